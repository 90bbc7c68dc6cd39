package scenarios

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Store provides persistence for scenarios on top of PostgreSQL.
// It owns the stored representation; callers hand it fully-computed
// Scenario values and get fresh rows back.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const scenarioColumns = `id, name, description, tags, created_at, updated_at,
       initial_price, useful_life_years, residual_value,
       annual_maintenance, annual_operating_cost, discount_rate,
       total_cost, annual_cost, monthly_cost, cost_per_day, npv_tco, npv_annual`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*Scenario, error) {
	var s Scenario
	var description sql.NullString
	err := row.Scan(
		&s.ID, &s.Name, &description, pq.Array(&s.Tags), &s.CreatedAt, &s.UpdatedAt,
		&s.InitialPrice, &s.UsefulLifeYears, &s.ResidualValue,
		&s.AnnualMaintenance, &s.AnnualOperatingCost, &s.DiscountRate,
		&s.TotalCost, &s.AnnualCost, &s.MonthlyCost, &s.CostPerDay, &s.NPVTCO, &s.NPVAnnual,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		s.Description = &description.String
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}

// Create inserts a scenario (inputs and computed results) and returns the
// stored row.
func (st *Store) Create(ctx context.Context, s *Scenario) (*Scenario, error) {
	const q = `
insert into tco_scenarios
  (name, description, tags,
   initial_price, useful_life_years, residual_value,
   annual_maintenance, annual_operating_cost, discount_rate,
   total_cost, annual_cost, monthly_cost, cost_per_day, npv_tco, npv_annual)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
returning ` + scenarioColumns + `;`

	row := st.db.QueryRowContext(ctx, q,
		s.Name, nullableString(s.Description), pq.Array(s.Tags),
		s.InitialPrice, s.UsefulLifeYears, s.ResidualValue,
		s.AnnualMaintenance, s.AnnualOperatingCost, s.DiscountRate,
		s.TotalCost, s.AnnualCost, s.MonthlyCost, s.CostPerDay, s.NPVTCO, s.NPVAnnual,
	)
	return scanScenario(row)
}

// Get returns the scenario with the given id, or ErrNotFound.
func (st *Store) Get(ctx context.Context, id int64) (*Scenario, error) {
	const q = `select ` + scenarioColumns + ` from tco_scenarios where id = $1;`

	s, err := scanScenario(st.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns one page of scenarios ordered by most-recently-updated first,
// plus the total count under the same filter. An empty search matches
// everything; otherwise it is a case-insensitive name substring filter.
func (st *Store) List(ctx context.Context, page, perPage int, search string) ([]Scenario, int, error) {
	offset := (page - 1) * perPage

	var (
		total int
		rows  *sql.Rows
		err   error
	)
	if search == "" {
		if err = st.db.QueryRowContext(ctx,
			`select count(*) from tco_scenarios;`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = st.db.QueryContext(ctx,
			`select `+scenarioColumns+` from tco_scenarios order by updated_at desc offset $1 limit $2;`,
			offset, perPage)
	} else {
		if err = st.db.QueryRowContext(ctx,
			`select count(*) from tco_scenarios where name ilike '%' || $1 || '%';`,
			search).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = st.db.QueryContext(ctx,
			`select `+scenarioColumns+` from tco_scenarios where name ilike '%' || $1 || '%' order by updated_at desc offset $2 limit $3;`,
			search, offset, perPage)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Scenario, 0, perPage)
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, rows.Err()
}

// Update overwrites every mutable column of the scenario and refreshes
// updated_at. The caller supplies the merged, recomputed state; concurrent
// updates are last-write-wins.
func (st *Store) Update(ctx context.Context, id int64, s *Scenario) (*Scenario, error) {
	const q = `
update tco_scenarios
set name = $2, description = $3, tags = $4,
    initial_price = $5, useful_life_years = $6, residual_value = $7,
    annual_maintenance = $8, annual_operating_cost = $9, discount_rate = $10,
    total_cost = $11, annual_cost = $12, monthly_cost = $13,
    cost_per_day = $14, npv_tco = $15, npv_annual = $16,
    updated_at = now()
where id = $1
returning ` + scenarioColumns + `;`

	row := st.db.QueryRowContext(ctx, q, id,
		s.Name, nullableString(s.Description), pq.Array(s.Tags),
		s.InitialPrice, s.UsefulLifeYears, s.ResidualValue,
		s.AnnualMaintenance, s.AnnualOperatingCost, s.DiscountRate,
		s.TotalCost, s.AnnualCost, s.MonthlyCost, s.CostPerDay, s.NPVTCO, s.NPVAnnual,
	)
	updated, err := scanScenario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the scenario and reports whether a row existed.
func (st *Store) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := st.db.ExecContext(ctx, `delete from tco_scenarios where id = $1;`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Stats aggregates monthly cost across all rows; COALESCE keeps an empty
// table at zeros instead of NULLs.
func (st *Store) Stats(ctx context.Context) (*Stats, error) {
	const q = `
select count(*),
       coalesce(avg(monthly_cost), 0),
       coalesce(min(monthly_cost), 0),
       coalesce(max(monthly_cost), 0)
from tco_scenarios;`

	var stats Stats
	err := st.db.QueryRowContext(ctx, q).Scan(
		&stats.TotalScenarios, &stats.AvgMonthlyCost, &stats.MinMonthlyCost, &stats.MaxMonthlyCost,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
