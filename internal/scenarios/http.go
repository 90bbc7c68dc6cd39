package scenarios

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/logic-api/tco-backend/internal/tco"
)

type Handler struct {
	svc *Service
}

// Register attaches scenario routes to the given group.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/stats", h.stats)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Tags        []string `json:"tags"`
	tco.CalcRequest
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	s, err := h.svc.Create(c.Request.Context(), CreateParams{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Tags:        req.Tags,
		Input:       req.ToInput(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *Handler) list(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	perPage, err := queryInt(c, "per_page", 20)
	if err != nil || perPage < 1 || perPage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "per_page must be between 1 and 100"})
		return
	}
	search := c.Query("search")

	items, total, err := h.svc.List(c.Request.Context(), page, perPage, search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type updateReq struct {
	Name                *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description         *string  `json:"description" binding:"omitempty,max=1000"`
	Tags                []string `json:"tags"`
	InitialPrice        *float64 `json:"initial_price" binding:"omitempty,gt=0"`
	UsefulLifeYears     *int     `json:"useful_life_years" binding:"omitempty,gt=0,lte=100"`
	ResidualValue       *float64 `json:"residual_value" binding:"omitempty,gte=0"`
	AnnualMaintenance   *float64 `json:"annual_maintenance" binding:"omitempty,gte=0"`
	AnnualOperatingCost *float64 `json:"annual_operating_cost" binding:"omitempty,gte=0"`
	DiscountRate        *float64 `json:"discount_rate" binding:"omitempty,gte=0,lte=1"`
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	s, err := h.svc.Update(c.Request.Context(), id, Patch{
		Name:                req.Name,
		Description:         req.Description,
		Tags:                req.Tags,
		InitialPrice:        req.InitialPrice,
		UsefulLifeYears:     req.UsefulLifeYears,
		ResidualValue:       req.ResidualValue,
		AnnualMaintenance:   req.AnnualMaintenance,
		AnnualOperatingCost: req.AnnualOperatingCost,
		DiscountRate:        req.DiscountRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// respondError maps domain failures onto transport codes: engine validation
// errors are the client's fault (400), unknown ids are 404, everything else
// is a server failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tco.ErrInvalidLifespan),
		errors.Is(err, tco.ErrNegativePrice),
		errors.Is(err, tco.ErrNegativeAnnualCost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
