package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/vtreat"
)

//
// ---------------------- DEMO DOCUMENTATION ----------------------
//
// This binary builds a small synthetic employee table in memory (no CSV
// input, unlike a CSV-driven data-prep demo) and walks the full vtreat
// lifecycle end to end:
//
//   1. fit a numeric treatment plan (predicting salary) over a mix of
//      numeric and categorical columns, some with missing cells
//   2. print the resulting score frame and the recommended variable subset
//   3. re-transform the SAME training frame, to show the
//      same-frame-transform warning a deployed scorer must not ignore
//   4. transform a small fresh frame and print its derived rows directly —
//      fitting a downstream model on top of a cross-frame is the deploying
//      application's job, not this package's, so the demo stops at the
//      treated matrix rather than feeding it to a model fitter of its own
//
// Example:
//   go run ./cmd/examples/vtreat_demo
//
// ------------------------------------------------------------------
//

func buildTrainingFrame() (*frame.Frame, []float64) {
	n := 200
	departments := []string{"engineering", "sales", "marketing", "support", "finance"}
	cities := []string{"nyc", "austin", "remote"}

	rng := rand.New(rand.NewSource(7))

	tenure := make([]float64, n)
	age := make([]float64, n)
	dept := make([]string, n)
	city := make([]string, n)
	salary := make([]float64, n)

	for i := 0; i < n; i++ {
		tenure[i] = rng.Float64() * 15
		age[i] = 22 + rng.Float64()*40
		if i%23 == 0 {
			tenure[i] = math.NaN() // a few missing tenure cells
		}
		dept[i] = departments[rng.Intn(len(departments))]
		city[i] = cities[rng.Intn(len(cities))]
		if i%31 == 0 {
			city[i] = "" // a few missing city cells
		}

		base := 45000.0 + tenure[i]*2200 + (age[i]-22)*300
		switch dept[i] {
		case "engineering":
			base += 18000
		case "sales":
			base += 6000
		case "finance":
			base += 9000
		}
		salary[i] = base + rng.NormFloat64()*2500
	}

	fr, err := frame.New(
		frame.NewNumericColumn("tenure_years", tenure),
		frame.NewNumericColumn("age", age),
		frame.NewCategoricalColumn("department", dept, ""),
		frame.NewCategoricalColumn("city", city, ""),
	)
	if err != nil {
		log.Fatalf("building training frame: %v", err)
	}
	return fr, salary
}

func buildFreshFrame() *frame.Frame {
	fr, err := frame.New(
		frame.NewNumericColumn("tenure_years", []float64{1.5, 9.0, math.NaN()}),
		frame.NewNumericColumn("age", []float64{26, 41, 33}),
		frame.NewCategoricalColumn("department", []string{"engineering", "legal", "sales"}, ""),
		frame.NewCategoricalColumn("city", []string{"austin", "", "nyc"}, ""),
	)
	if err != nil {
		log.Fatalf("building fresh frame: %v", err)
	}
	return fr
}

func main() {
	ctx := context.Background()

	trainFrame, salary := buildTrainingFrame()
	variables := []string{"tenure_years", "age", "department", "city"}

	params := vtreat.DefaultParams()
	params.Seed = 42

	plan, crossFrame, err := vtreat.FitNumeric(ctx, trainFrame, variables, salary, params)
	if err != nil {
		log.Fatalf("fit: %v", err)
	}

	fmt.Println(plan)
	fmt.Println("\nscore frame:")
	fmt.Printf("%-22s%-12s%-12s%-12s\n", "variable", "rsq", "sig", "recommended")
	for _, row := range plan.ScoreFrame() {
		fmt.Printf("%-22s%-12.4f%-12.4f%-12t\n", row.VarName, row.Rsq, row.Sig, row.Recommended)
	}

	fmt.Println("\nrecommended variables:", plan.RecommendedNames())
	fmt.Printf("cross-frame: %d rows x %d columns\n", crossFrame.R, crossFrame.C)

	// Re-transforming the exact training frame should surface the
	// same-frame-transform warning: cross_frame values are cross-validated
	// (honest), but Transform's output here is the biased deployment fit.
	_, warnings, err := plan.Transform(trainFrame)
	if err != nil {
		log.Fatalf("same-frame transform: %v", err)
	}
	fmt.Println("\nsame-frame transform warnings:", warnings)

	// A fresh frame transforms cleanly into the same derived schema; this
	// cross-frame is what a deploying caller would hand to its own model.
	freshFrame := buildFreshFrame()
	freshCross, freshWarnings, err := plan.Transform(freshFrame)
	if err != nil {
		log.Fatalf("fresh transform: %v", err)
	}
	fmt.Println("fresh transform warnings:", freshWarnings)

	fmt.Println("\nfresh transform, one row per input record:")
	for i := 0; i < freshCross.R; i++ {
		fmt.Printf("  row %d: %v\n", i, freshCross.Row(i))
	}
}
