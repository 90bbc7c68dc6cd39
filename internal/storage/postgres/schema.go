package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const scenariosSchema = `
CREATE TABLE IF NOT EXISTS tco_scenarios (
    id                    BIGSERIAL PRIMARY KEY,
    name                  VARCHAR(255) NOT NULL,
    description           VARCHAR(1000),
    tags                  TEXT[] NOT NULL DEFAULT '{}',
    created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),

    initial_price         DOUBLE PRECISION NOT NULL,
    useful_life_years     INTEGER NOT NULL,
    residual_value        DOUBLE PRECISION NOT NULL DEFAULT 0,
    annual_maintenance    DOUBLE PRECISION NOT NULL DEFAULT 0,
    annual_operating_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
    discount_rate         DOUBLE PRECISION NOT NULL DEFAULT 0.03,

    total_cost            DOUBLE PRECISION,
    annual_cost           DOUBLE PRECISION,
    monthly_cost          DOUBLE PRECISION,
    cost_per_day          DOUBLE PRECISION,
    npv_tco               DOUBLE PRECISION,
    npv_annual            DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_tco_scenarios_name ON tco_scenarios (name);
CREATE INDEX IF NOT EXISTS idx_tco_scenarios_updated_at ON tco_scenarios (updated_at DESC);
`

// EnsureSchema creates the scenarios table on startup so a fresh database
// works without a separate migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, scenariosSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
