package treatment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/score"
)

// planFormatVersion is the serialized plan layout's version integer.
// Bump when the record shape changes in a way old readers can't
// tolerate.
const planFormatVersion = 1

// ErrUnsupportedEncoderVersion is fatal on load when an encoder record
// carries an unrecognized kind tag.
var ErrUnsupportedEncoderVersion = errors.New("treatment: unsupported encoder kind in serialized plan")

// encoderRecord is one tagged entry in the serialized encoder list: a
// kind tag plus a kind-specific parameter map.
type encoderRecord struct {
	Kind   string                 `yaml:"kind"`
	Origin string                 `yaml:"origin"`
	Names  []string               `yaml:"names"`
	Params map[string]interface{} `yaml:"params"`
}

type scoreRowRecord struct {
	VarName           string  `yaml:"var_name"`
	VarMoves          bool    `yaml:"var_moves"`
	Rsq               float64 `yaml:"rsq"`
	Sig               float64 `yaml:"sig"`
	NeedsSplit        bool    `yaml:"needs_split"`
	ExtraModelDegrees int     `yaml:"extra_model_degrees"`
	Origin            string  `yaml:"origin"`
	Kind              string  `yaml:"kind"`
	Recommended       bool    `yaml:"recommended"`
	OutcomeLevel      string  `yaml:"outcome_level,omitempty"`
}

type outcomeRecord struct {
	Kind          string   `yaml:"kind"`
	PositiveValue string   `yaml:"positive_value,omitempty"`
	Classes       []string `yaml:"classes,omitempty"`
}

// document is the top-level serialized plan layout: version
// integer, outcome descriptor, ordered encoder list, plus the score
// frame and bookkeeping needed to fully restore a Plan.
type document struct {
	Version     int             `yaml:"version"`
	ID          string          `yaml:"id"`
	Outcome     outcomeRecord   `yaml:"outcome"`
	FitRowCount int             `yaml:"fit_row_count"`
	Names       []string        `yaml:"names"`
	Warnings    []string        `yaml:"warnings,omitempty"`
	Encoders    []encoderRecord `yaml:"encoders"`
	Score       []scoreRowRecord `yaml:"score_frame"`
}

// Save serializes the plan to a YAML byte stream. Encoders wrapped in
// encoders.ScaledEncoder (plans fit with Scale on a numeric outcome) have
// no record form: Save returns ErrUnsupportedEncoderVersion for them.
func (p *Plan) Save() ([]byte, error) {
	doc := document{
		Version:     planFormatVersion,
		ID:          p.ID.String(),
		Outcome:     outcomeRecord{Kind: p.Outcome.Kind.String(), PositiveValue: p.Outcome.PositiveValue, Classes: p.Outcome.Classes},
		FitRowCount: p.FitRowCount,
		Names:       p.Names,
		Warnings:    p.Warnings,
	}
	for _, enc := range p.Encoders {
		rec, err := encodeRecord(enc)
		if err != nil {
			return nil, err
		}
		doc.Encoders = append(doc.Encoders, rec)
	}
	for _, row := range p.Score {
		doc.Score = append(doc.Score, scoreRowRecord{
			VarName: row.VarName, VarMoves: row.VarMoves, Rsq: row.Rsq, Sig: row.Sig,
			NeedsSplit: row.NeedsSplit, ExtraModelDegrees: row.ExtraModelDegrees,
			Origin: row.Origin, Kind: row.Kind, Recommended: row.Recommended, OutcomeLevel: row.OutcomeLevel,
		})
	}
	return yaml.Marshal(doc)
}

// Load deserializes a plan from a YAML byte stream previously produced
// by Save. It does not restore the training-frame fingerprint, so a
// loaded plan never reports SameFrameTransformWarning.
func Load(data []byte) (*Plan, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("treatment: decoding plan: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		id = uuid.New()
	}

	p := &Plan{
		ID:          id,
		Outcome:     OutcomeDescriptor{Kind: parseOutcomeKind(doc.Outcome.Kind), PositiveValue: doc.Outcome.PositiveValue, Classes: doc.Outcome.Classes},
		FitRowCount: doc.FitRowCount,
		Names:       doc.Names,
		Warnings:    doc.Warnings,
	}
	for _, rec := range doc.Encoders {
		enc, err := decodeRecord(rec)
		if err != nil {
			return nil, err
		}
		p.Encoders = append(p.Encoders, enc)
	}
	for _, rec := range doc.Score {
		p.Score = append(p.Score, score.Row{
			VarName: rec.VarName, VarMoves: rec.VarMoves, Rsq: rec.Rsq, Sig: rec.Sig,
			NeedsSplit: rec.NeedsSplit, ExtraModelDegrees: rec.ExtraModelDegrees,
			Origin: rec.Origin, Kind: rec.Kind, Recommended: rec.Recommended, OutcomeLevel: rec.OutcomeLevel,
		})
	}
	return p, nil
}

func parseOutcomeKind(s string) frame.OutcomeKind {
	switch s {
	case "numeric":
		return frame.OutcomeNumeric
	case "binomial":
		return frame.OutcomeBinomial
	case "multinomial":
		return frame.OutcomeMultinomial
	default:
		return frame.OutcomeUnsupervised
	}
}

func encodeRecord(enc encoders.Encoder) (encoderRecord, error) {
	rec := encoderRecord{Kind: string(enc.Kind()), Origin: enc.Origin(), Names: enc.Names()}
	switch e := enc.(type) {
	case *encoders.CleanEncoder:
		low, high, collared := e.Collared()
		rec.Params = map[string]interface{}{
			"fill": e.Fill(), "collar_low": low, "collar_high": high, "collared": collared,
		}
	case *encoders.IsBadEncoder:
		rec.Params = map[string]interface{}{"mean": e.Mean()}
	case *encoders.IndicatorEncoder:
		rec.Params = map[string]interface{}{"levels": e.Levels(), "means": e.MeanEmitted()}
	case *encoders.PrevalenceEncoder:
		rec.Params = map[string]interface{}{
			"prevalence": e.Prevalence(), "novel_value": e.NovelValue(), "trained_mean": e.MeanEmitted()[0],
		}
	case *encoders.ImpactEncoder:
		rec.Params = map[string]interface{}{
			"coef": e.Coef(), "numeric": e.Numeric(), "cat_scaling": e.CatScaling(), "grand": e.Grand(),
		}
	case *encoders.DeviationEncoder:
		rec.Params = map[string]interface{}{"std": e.Std(), "pooled": e.Pooled()}
	default:
		return encoderRecord{}, fmt.Errorf("%w: %T", ErrUnsupportedEncoderVersion, enc)
	}
	return rec, nil
}

func decodeRecord(rec encoderRecord) (encoders.Encoder, error) {
	switch encoders.Kind(rec.Kind) {
	case encoders.KindClean:
		collared, _ := rec.Params["collared"].(bool)
		return encoders.RestoreClean(
			rec.Origin, toFloat(rec.Params["fill"]),
			toFloat(rec.Params["collar_low"]), toFloat(rec.Params["collar_high"]), collared,
		), nil
	case encoders.KindIsBad:
		return encoders.RestoreIsBad(rec.Origin, toFloat(rec.Params["mean"])), nil
	case encoders.KindIndicator:
		levels := toStringSlice(rec.Params["levels"])
		means := toFloatSlice(rec.Params["means"])
		return encoders.RestoreIndicator(rec.Origin, levels, rec.Names, means), nil
	case encoders.KindPrevalence:
		prevalence := toFloatMap(rec.Params["prevalence"])
		return encoders.RestorePrevalence(rec.Origin, prevalence, toFloat(rec.Params["novel_value"]), toFloat(rec.Params["trained_mean"])), nil
	case encoders.KindImpact:
		coef := toFloatMap(rec.Params["coef"])
		numeric, _ := rec.Params["numeric"].(bool)
		catScaling, _ := rec.Params["cat_scaling"].(bool)
		return encoders.RestoreImpact(rec.Origin, numeric, catScaling, coef, toFloat(rec.Params["grand"])), nil
	case encoders.KindDeviation:
		std := toFloatMap(rec.Params["std"])
		return encoders.RestoreDeviation(rec.Origin, std, toFloat(rec.Params["pooled"])), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoderVersion, rec.Kind)
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		if s, ok := v.([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = fmt.Sprint(r)
	}
	return out
}

func toFloatSlice(v interface{}) []float64 {
	raw, ok := v.([]interface{})
	if !ok {
		if s, ok := v.([]float64); ok {
			return s
		}
		return nil
	}
	out := make([]float64, len(raw))
	for i, r := range raw {
		out[i] = toFloat(r)
	}
	return out
}

func toFloatMap(v interface{}) map[string]float64 {
	out := map[string]float64{}
	switch m := v.(type) {
	case map[string]interface{}:
		for k, val := range m {
			out[k] = toFloat(val)
		}
	case map[interface{}]interface{}:
		for k, val := range m {
			out[fmt.Sprint(k)] = toFloat(val)
		}
	case map[string]float64:
		return m
	}
	return out
}
