package tco

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CalcRequest is the wire shape of a TCO input. Range checks happen at this
// boundary so the engine only ever sees well-formed values.
type CalcRequest struct {
	InitialPrice        float64  `json:"initial_price" binding:"required,gt=0"`
	UsefulLifeYears     int      `json:"useful_life_years" binding:"required,gt=0,lte=100"`
	ResidualValue       float64  `json:"residual_value" binding:"gte=0"`
	AnnualMaintenance   float64  `json:"annual_maintenance" binding:"gte=0"`
	AnnualOperatingCost float64  `json:"annual_operating_cost" binding:"gte=0"`
	DiscountRate        *float64 `json:"discount_rate" binding:"omitempty,gte=0,lte=1"`
}

// ToInput applies defaults (discount_rate 0.03 when absent) and returns the
// engine input.
func (r CalcRequest) ToInput() Input {
	rate := DefaultDiscountRate
	if r.DiscountRate != nil {
		rate = *r.DiscountRate
	}
	return Input{
		InitialPrice:        r.InitialPrice,
		UsefulLifeYears:     r.UsefulLifeYears,
		ResidualValue:       r.ResidualValue,
		AnnualMaintenance:   r.AnnualMaintenance,
		AnnualOperatingCost: r.AnnualOperatingCost,
		DiscountRate:        rate,
	}
}

type compareRequest struct {
	Options []compareOption `json:"options" binding:"required,min=2,dive"`
}

type compareOption struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	CalcRequest
}

type breakevenRequest struct {
	OptionA CalcRequest `json:"option_a" binding:"required"`
	OptionB CalcRequest `json:"option_b" binding:"required"`
}

type breakevenResponse struct {
	BreakevenYears *float64 `json:"breakeven_years"`
	HasBreakeven   bool     `json:"has_breakeven"`
	Message        string   `json:"message"`
}

// RegisterRoutes attaches the stateless calculation endpoints.
func RegisterRoutes(r gin.IRouter) {
	r.POST("/calculate", handleCalculate)
	r.POST("/compare", handleCompare)
	r.POST("/breakeven", handleBreakeven)
}

func handleCalculate(c *gin.Context) {
	var req CalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	in := req.ToInput()
	result, err := Calculate(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"input": in, "result": result})
}

func handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	options := make([]Option, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, Option{Name: opt.Name, Input: opt.ToInput()})
	}

	results, err := Compare(options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "best_option": results[0].Name})
}

func handleBreakeven(c *gin.Context) {
	var req breakevenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	years, err := Breakeven(req.OptionA.ToInput(), req.OptionB.ToInput())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := breakevenResponse{BreakevenYears: years, HasBreakeven: years != nil}
	if years != nil {
		resp.Message = fmt.Sprintf("Option A breaks even after %g years", *years)
	} else {
		resp.Message = "No break-even: Option A has higher or equal annual cost"
	}

	c.JSON(http.StatusOK, resp)
}
