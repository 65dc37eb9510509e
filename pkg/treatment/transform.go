package treatment

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"

	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/frame"
)

// fingerprint identifies a frame by row count plus a content hash, used
// to detect the SameFrameTransformWarning condition.
type fingerprint struct {
	rows int
	hash uint64
}

func fingerprintFrame(fr *frame.Frame) fingerprint {
	h := fnv.New64a()
	for _, name := range fr.ColumnNames() {
		col, _ := fr.Column(name)
		fmt.Fprintf(h, "%s|", name)
		if col.Kind == frame.KindNumeric {
			for _, v := range col.Nums {
				fmt.Fprintf(h, "%x,", math.Float64bits(v))
			}
		} else {
			for _, v := range col.Cats {
				fmt.Fprintf(h, "%s,", v)
			}
		}
	}
	return fingerprint{rows: fr.RowCount(), hash: h.Sum64()}
}

// Transform applies every stored deployment encoder to fr, returning a
// frame with the same derived schema as the cross-frame (minus the
// outcome column). It fails with ErrSchemaMismatch if a required origin
// column is absent; extra columns in fr are ignored.
//
// If fr is the same frame (by row-count + content hash) the plan was fit
// against, a SameFrameTransformWarning is appended to the returned
// warnings: those outputs are deployment-encoder outputs, not the
// cross-frame, and are statistically biased for downstream modelling.
// The caller should use FitTransform/Fit's cross-frame instead.
func (p *Plan) Transform(fr *frame.Frame) (*core.CrossFrame, []string, error) {
	origins := map[string]bool{}
	for _, enc := range p.Encoders {
		origins[enc.Origin()] = true
	}
	for origin := range origins {
		if !fr.HasColumn(origin) {
			return nil, nil, fmt.Errorf("%w: column %q", ErrSchemaMismatch, origin)
		}
	}

	cf := core.NewCrossFrame(fr.RowCount(), p.Names)
	allRows := fr.AllRows()

	offset := 0
	for _, enc := range p.Encoders {
		col, _ := fr.Column(enc.Origin())
		vals := enc.Apply(col, allRows)
		for k, colVals := range vals {
			cf.WriteColumn(offset+k, allRows, colVals)
		}
		offset += len(vals)
	}

	var warnings []string
	if fingerprintFrame(fr) == p.trainFingerprint {
		warnings = append(warnings, "SameFrameTransformWarning: transform called on the same frame used to fit this plan; use fit_transform's cross-frame instead of transform(training_frame) to avoid nested-model bias")
		slog.Warn("vtreat: SameFrameTransformWarning", "plan_id", p.ID.String())
	}
	return cf, warnings, nil
}
