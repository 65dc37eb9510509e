package vtreat

import (
	"github.com/go-playground/validator/v10"

	"github.com/slee1009/vtreat/pkg/encoders"
)

// Params collects the fit-time parameters a treatment plan recognizes.
// Validation follows the package's existing pattern of tagging request/config
// structs for github.com/go-playground/validator/v10 rather than
// hand-rolling field checks.
type Params struct {
	MinFraction float64 `validate:"gte=0,lte=1"`
	SmFactor    float64 `validate:"gte=0"`
	RareCount   int     `validate:"gte=0"`
	RareSig     *float64
	CollarProb  float64 `validate:"gte=0,lte=0.5"`
	DoCollar    bool
	// CodeRestriction, when non-nil, is the set of encoder kinds
	// permitted; nil means all kinds.
	CodeRestriction map[encoders.Kind]bool
	NCross          int `validate:"gte=2"`
	Scale           bool
	// CatScaling is a pointer so the facade can tell "left at default"
	// apart from "explicitly set": FitNumeric rejects an explicit
	// CatScaling with InvalidParameter, since link-space scaling is
	// defined only for binomial outcomes.
	CatScaling      *bool
	Imputation      encoders.Imputation
	ForceSplit      bool
	PosValue        string
	NovelPrevalence float64
	Seed            uint64
}

// DefaultParams returns documented defaults.
func DefaultParams() Params {
	return Params{
		MinFraction: 0.02,
		SmFactor:    0,
		RareCount:   0,
		CollarProb:  0,
		DoCollar:    false,
		NCross:      3,
		Scale:       false,
		Imputation:  encoders.Imputation{Strategy: encoders.ImputeMean},
		ForceSplit:  false,
	}
}

var validate = validator.New()

// Validate checks struct-level constraints via go-playground/validator.
func (p Params) Validate() error {
	return validate.Struct(p)
}

func (p Params) catScaling(numericOutcome bool) (bool, error) {
	if p.CatScaling == nil {
		return !numericOutcome, nil // default: link space for binomial, unused for numeric
	}
	if numericOutcome {
		return false, ErrInvalidParameter
	}
	return *p.CatScaling, nil
}
