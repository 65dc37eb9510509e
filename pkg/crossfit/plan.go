package crossfit

import (
	"sort"

	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/ident"
	"github.com/slee1009/vtreat/pkg/telemetry"
)

// Config collects the fit-time parameters the cross-fit driver consumes,
// already resolved from the public Params type by the facade package.
type Config struct {
	MinFraction     float64
	SmFactor        float64
	RareCount       int
	DoCollar        bool
	CollarProb      float64
	CodeRestriction map[encoders.Kind]bool // nil = all kinds permitted
	NCross          int
	Seed            uint64
	Scale           bool
	CatScaling      bool
	Imputation      encoders.Imputation
	NovelPrevalence float64
	// Observer receives fit-lifecycle events; nil
	// defaults to telemetry.NoopObserver.
	Observer telemetry.Observer
}

// buildKindPlans walks the origin columns in order and, for each, the
// eligible encoder kinds in kind_priority order, assigning each a
// provisional set of derived column names. Indicator names depend on
// fitted levels, so its plan fits the (non-split) encoder immediately to
// discover them; every other kind's names are computable without
// fitting. This keeps the later parallel fit/apply pass free to run
// without mutating cross-frame layout.
func buildKindPlans(fr *frame.Frame, variables []string, outcomeKind frame.OutcomeKind, effectiveRows []int, cfg Config) ([]kindPlan, map[string]encoders.Encoder, error) {
	var plans []kindPlan
	prebuilt := map[string]encoders.Encoder{} // origin+"/"+kind -> encoder, for kinds fit eagerly here

	for originIndex, name := range variables {
		col, ok := fr.Column(name)
		if !ok {
			continue
		}
		for _, kind := range eligibleKinds(col, outcomeKind, cfg.CodeRestriction) {
			switch kind {
			case encoders.KindClean:
				plans = append(plans, kindPlan{originIndex, name, kind, []string{name + "_clean"}})
			case encoders.KindIsBad:
				plans = append(plans, kindPlan{originIndex, name, kind, []string{name + "_isBAD"}})
			case encoders.KindIndicator:
				enc, ok := encoders.FitIndicator(col, effectiveRows, cfg.MinFraction)
				if !ok {
					continue
				}
				prebuilt[name+"/"+string(kind)] = enc
				plans = append(plans, kindPlan{originIndex, name, kind, enc.Names()})
			case encoders.KindPrevalence:
				plans = append(plans, kindPlan{originIndex, name, kind, []string{name + "_catP"}})
			case encoders.KindImpact:
				suffix := "_catN"
				if outcomeKind == frame.OutcomeBinomial {
					suffix = "_catB"
				}
				plans = append(plans, kindPlan{originIndex, name, kind, []string{name + suffix}})
			case encoders.KindDeviation:
				plans = append(plans, kindPlan{originIndex, name, kind, []string{name + "_catD"}})
			}
		}
	}

	// The cross-frame column order is a deterministic function of
	// (origin_index, kind_priority); eligibleKinds' own emission order is
	// not itself kind_priority order (it appends indicator before impact
	// for readability), so enforce the real ordering here with a stable
	// sort — stable so that, within a single (origin, kind) the original
	// append order (and therefore level_lex order for indicator) survives.
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].originIndex != plans[j].originIndex {
			return plans[i].originIndex < plans[j].originIndex
		}
		return plans[i].kind.Priority() < plans[j].kind.Priority()
	})

	return plans, prebuilt, nil
}

// allColumnNames flattens plans into the full, ordered cross-frame column
// name list.
func allColumnNames(plans []kindPlan) []string {
	var names []string
	deduper := ident.NewDeduper()
	for _, p := range plans {
		for _, n := range p.names {
			names = append(names, deduper.Resolve(n))
		}
	}
	return names
}
