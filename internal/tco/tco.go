// Package tco computes Total Cost of Ownership metrics. The functions in
// this file are pure: no I/O, no shared state, safe for concurrent use.
package tco

import (
	"math"
	"sort"
)

// DefaultDiscountRate is applied when a request omits discount_rate.
const DefaultDiscountRate = 0.03

// Input holds the raw parameters of a TCO calculation.
type Input struct {
	InitialPrice        float64 `json:"initial_price"`
	UsefulLifeYears     int     `json:"useful_life_years"`
	ResidualValue       float64 `json:"residual_value"`
	AnnualMaintenance   float64 `json:"annual_maintenance"`
	AnnualOperatingCost float64 `json:"annual_operating_cost"`
	DiscountRate        float64 `json:"discount_rate"`
}

// Result holds the derived cost metrics, each rounded to 2 decimal places.
type Result struct {
	TotalCost   float64 `json:"total_cost"`
	AnnualCost  float64 `json:"annual_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	CostPerDay  float64 `json:"cost_per_day"`
	NPVTCO      float64 `json:"npv_tco"`
	NPVAnnual   float64 `json:"npv_annual"`
}

// Option is an Input tagged with a display name for comparison.
type Option struct {
	Name string
	Input
}

// Ranked is a comparison entry: the option's name and raw price/lifespan
// alongside its computed metrics and 1-based rank (1 = lowest annual cost).
type Ranked struct {
	Name            string  `json:"name"`
	InitialPrice    float64 `json:"initial_price"`
	UsefulLifeYears int     `json:"useful_life_years"`
	Result
	Rank int `json:"rank"`
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate derives simple and NPV-adjusted cost figures from in.
//
// Validation order matters: lifespan first, then prices, then annual costs;
// the first failing check determines the returned error.
func Calculate(in Input) (Result, error) {
	if in.UsefulLifeYears <= 0 {
		return Result{}, ErrInvalidLifespan
	}
	if in.InitialPrice < 0 || in.ResidualValue < 0 {
		return Result{}, ErrNegativePrice
	}
	if in.AnnualMaintenance < 0 || in.AnnualOperatingCost < 0 {
		return Result{}, ErrNegativeAnnualCost
	}

	years := float64(in.UsefulLifeYears)

	// Simple (undiscounted) TCO
	totalOperational := (in.AnnualMaintenance + in.AnnualOperatingCost) * years
	totalCost := in.InitialPrice + totalOperational - in.ResidualValue
	annualCost := totalCost / years

	// NPV-adjusted TCO, discrete annual discounting over years 1..N.
	// A zero discount rate degenerates to the simple figures.
	annualOutlay := in.AnnualMaintenance + in.AnnualOperatingCost
	npvOperational := 0.0
	for year := 1; year <= in.UsefulLifeYears; year++ {
		npvOperational += annualOutlay / math.Pow(1+in.DiscountRate, float64(year))
	}
	npvResidual := in.ResidualValue / math.Pow(1+in.DiscountRate, years)
	npvTCO := in.InitialPrice + npvOperational - npvResidual

	return Result{
		TotalCost:   Round2(totalCost),
		AnnualCost:  Round2(annualCost),
		MonthlyCost: Round2(annualCost / 12),
		// cost_per_day follows from the derived annual cost, not from
		// total_cost/(years*365); the two agree because years cancels.
		CostPerDay: Round2(annualCost / 365),
		NPVTCO:     Round2(npvTCO),
		NPVAnnual:  Round2(npvTCO / years),
	}, nil
}

// Breakeven returns the number of years until option A's extra upfront cost
// is offset by its lower annual cost, or nil when A never catches up
// (B's annual cost is less than or equal to A's). A nil return is a normal
// outcome, not an error.
//
// When A is also cheaper upfront the result can be zero or negative; the
// value is returned as the formula produces it.
func Breakeven(a, b Input) (*float64, error) {
	ra, err := Calculate(a)
	if err != nil {
		return nil, err
	}
	rb, err := Calculate(b)
	if err != nil {
		return nil, err
	}

	initialDiff := a.InitialPrice - b.InitialPrice
	annualSavings := rb.AnnualCost - ra.AnnualCost
	if annualSavings <= 0 {
		return nil, nil
	}

	years := Round2(initialDiff / annualSavings)
	return &years, nil
}

// Compare computes metrics for every option and ranks them ascending by
// annual cost. The sort is stable, so ties keep their input order. The first
// invalid option aborts the whole comparison; no partial results are returned.
func Compare(options []Option) ([]Ranked, error) {
	results := make([]Ranked, 0, len(options))

	for _, opt := range options {
		res, err := Calculate(opt.Input)
		if err != nil {
			return nil, err
		}
		results = append(results, Ranked{
			Name:            opt.Name,
			InitialPrice:    opt.InitialPrice,
			UsefulLifeYears: opt.UsefulLifeYears,
			Result:          res,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AnnualCost < results[j].AnnualCost
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}
