package tco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_PriceAndLifespanOnly(t *testing.T) {
	result, err := Calculate(Input{
		InitialPrice:    100000,
		UsefulLifeYears: 5,
		DiscountRate:    DefaultDiscountRate,
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, result.TotalCost)
	assert.Equal(t, 20000.0, result.AnnualCost)
	assert.Equal(t, 1666.67, result.MonthlyCost)
	assert.Equal(t, 54.79, result.CostPerDay)
	assert.Equal(t, 100000.0, result.NPVTCO)
	assert.Equal(t, 20000.0, result.NPVAnnual)
}

func TestCalculate_AllFieldsZeroRate(t *testing.T) {
	result, err := Calculate(Input{
		InitialPrice:        10000,
		UsefulLifeYears:     4,
		ResidualValue:       2000,
		AnnualMaintenance:   500,
		AnnualOperatingCost: 300,
		DiscountRate:        0,
	})
	require.NoError(t, err)

	assert.Equal(t, 11200.0, result.TotalCost)
	assert.Equal(t, 2800.0, result.AnnualCost)
	assert.Equal(t, 233.33, result.MonthlyCost)
	assert.Equal(t, 7.67, result.CostPerDay)

	// With a zero discount rate the NPV figures collapse to the simple ones.
	assert.Equal(t, result.TotalCost, result.NPVTCO)
	assert.Equal(t, result.AnnualCost, result.NPVAnnual)
}

func TestCalculate_NPVDiscountsFutureCosts(t *testing.T) {
	result, err := Calculate(Input{
		InitialPrice:        50000,
		UsefulLifeYears:     10,
		AnnualMaintenance:   2000,
		AnnualOperatingCost: 3000,
		DiscountRate:        0.05,
	})
	require.NoError(t, err)

	// Discounted operational spend must be cheaper than the nominal total.
	assert.Less(t, result.NPVTCO, result.TotalCost)
	assert.Greater(t, result.NPVTCO, 50000.0)
}

func TestCalculate_ConvergesToSimpleTCO(t *testing.T) {
	in := Input{
		InitialPrice:        75000,
		UsefulLifeYears:     8,
		ResidualValue:       5000,
		AnnualMaintenance:   1200,
		AnnualOperatingCost: 900,
		DiscountRate:        1e-9,
	}
	result, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, result.TotalCost, result.NPVTCO, 0.01)
	assert.InDelta(t, result.AnnualCost, result.NPVAnnual, 0.01)
}

func TestCalculate_ValidationOrder(t *testing.T) {
	// Lifespan wins regardless of other invalid fields.
	_, err := Calculate(Input{InitialPrice: -1, UsefulLifeYears: 0, AnnualMaintenance: -5})
	assert.ErrorIs(t, err, ErrInvalidLifespan)

	_, err = Calculate(Input{InitialPrice: -1, UsefulLifeYears: 5, AnnualMaintenance: -5})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Calculate(Input{InitialPrice: 100, UsefulLifeYears: 5, ResidualValue: -1})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Calculate(Input{InitialPrice: 100, UsefulLifeYears: 5, AnnualOperatingCost: -1})
	assert.ErrorIs(t, err, ErrNegativeAnnualCost)
}

func TestCalculate_NegativeLifespanAlwaysFails(t *testing.T) {
	for _, years := range []int{0, -1, -100} {
		_, err := Calculate(Input{InitialPrice: 100000, UsefulLifeYears: years})
		assert.ErrorIs(t, err, ErrInvalidLifespan, "years=%d", years)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Input{
		InitialPrice:      450000,
		UsefulLifeYears:   12,
		ResidualValue:     90000,
		AnnualMaintenance: 5000,
		DiscountRate:      0.03,
	}
	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBreakeven(t *testing.T) {
	a := Input{InitialPrice: 110000, UsefulLifeYears: 5, AnnualOperatingCost: 5000, DiscountRate: DefaultDiscountRate}
	b := Input{InitialPrice: 100000, UsefulLifeYears: 5, AnnualOperatingCost: 15000, DiscountRate: DefaultDiscountRate}

	years, err := Breakeven(a, b)
	require.NoError(t, err)
	require.NotNil(t, years)
	assert.Equal(t, 1.25, *years)
}

func TestBreakeven_NoBreakeven(t *testing.T) {
	a := Input{InitialPrice: 100000, UsefulLifeYears: 5, AnnualOperatingCost: 15000, DiscountRate: DefaultDiscountRate}
	b := Input{InitialPrice: 110000, UsefulLifeYears: 5, AnnualOperatingCost: 5000, DiscountRate: DefaultDiscountRate}

	// B's annual cost is lower than A's, so A never recovers anything.
	years, err := Breakeven(a, b)
	require.NoError(t, err)
	assert.Nil(t, years)
}

func TestBreakeven_EqualAnnualCosts(t *testing.T) {
	in := Input{InitialPrice: 100000, UsefulLifeYears: 5, DiscountRate: DefaultDiscountRate}

	years, err := Breakeven(in, in)
	require.NoError(t, err)
	assert.Nil(t, years)
}

func TestBreakeven_NegativeWhenACheaperBothWays(t *testing.T) {
	a := Input{InitialPrice: 90000, UsefulLifeYears: 5, AnnualOperatingCost: 5000, DiscountRate: DefaultDiscountRate}
	b := Input{InitialPrice: 100000, UsefulLifeYears: 5, AnnualOperatingCost: 15000, DiscountRate: DefaultDiscountRate}

	// A is cheaper upfront AND annually; the formula yields a negative value
	// and it is passed through unchanged.
	years, err := Breakeven(a, b)
	require.NoError(t, err)
	require.NotNil(t, years)
	assert.Equal(t, -0.83, *years)
}

func TestBreakeven_PropagatesValidationError(t *testing.T) {
	bad := Input{InitialPrice: 100000, UsefulLifeYears: 0}
	good := Input{InitialPrice: 100000, UsefulLifeYears: 5}

	_, err := Breakeven(bad, good)
	assert.ErrorIs(t, err, ErrInvalidLifespan)

	_, err = Breakeven(good, bad)
	assert.ErrorIs(t, err, ErrInvalidLifespan)
}

func TestCompare_RanksByAnnualCost(t *testing.T) {
	options := []Option{
		{Name: "pricey", Input: Input{InitialPrice: 200000, UsefulLifeYears: 5, DiscountRate: DefaultDiscountRate}},
		{Name: "cheap", Input: Input{InitialPrice: 50000, UsefulLifeYears: 5, DiscountRate: DefaultDiscountRate}},
		{Name: "middle", Input: Input{InitialPrice: 100000, UsefulLifeYears: 5, DiscountRate: DefaultDiscountRate}},
	}

	results, err := Compare(options)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "cheap", results[0].Name)
	assert.Equal(t, "middle", results[1].Name)
	assert.Equal(t, "pricey", results[2].Name)

	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].AnnualCost, r.AnnualCost)
		}
	}
}

func TestCompare_StableOnTies(t *testing.T) {
	same := Input{InitialPrice: 60000, UsefulLifeYears: 6, DiscountRate: DefaultDiscountRate}
	options := []Option{
		{Name: "first", Input: same},
		{Name: "second", Input: same},
		{Name: "third", Input: same},
	}

	results, err := Compare(options)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"},
		[]string{results[0].Name, results[1].Name, results[2].Name})
}

func TestCompare_AllOrNothing(t *testing.T) {
	options := []Option{
		{Name: "ok", Input: Input{InitialPrice: 60000, UsefulLifeYears: 6}},
		{Name: "broken", Input: Input{InitialPrice: 60000, UsefulLifeYears: 0}},
	}

	results, err := Compare(options)
	assert.ErrorIs(t, err, ErrInvalidLifespan)
	assert.Nil(t, results)
}

func TestCompare_PropagatesRawFields(t *testing.T) {
	options := []Option{
		{Name: "van", Input: Input{InitialPrice: 42000, UsefulLifeYears: 7, DiscountRate: DefaultDiscountRate}},
		{Name: "truck", Input: Input{InitialPrice: 99000, UsefulLifeYears: 9, DiscountRate: DefaultDiscountRate}},
	}

	results, err := Compare(options)
	require.NoError(t, err)

	assert.Equal(t, 42000.0, results[0].InitialPrice)
	assert.Equal(t, 7, results[0].UsefulLifeYears)
}
