package scenarios

import (
	"errors"
	"time"

	"github.com/logic-api/tco-backend/internal/tco"
)

var ErrNotFound = errors.New("scenario not found")

// Scenario is a persisted, named TCO calculation: the raw inputs plus the
// results computed from them. Results are always derived by the service on
// write; they are never accepted from outside.
type Scenario struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	tco.Input
	tco.Result
}

// Stats aggregates monthly cost across all stored scenarios.
// An empty store reports zeros.
type Stats struct {
	TotalScenarios int64   `json:"total_scenarios"`
	AvgMonthlyCost float64 `json:"avg_monthly_cost"`
	MinMonthlyCost float64 `json:"min_monthly_cost"`
	MaxMonthlyCost float64 `json:"max_monthly_cost"`
}
