package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository stores audit entries in Postgres for deployments that need a
// durable trail.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// EnsureSchema creates the audit tables if they do not exist.
func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS audit_events (
			id            TEXT PRIMARY KEY,
			action        TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			agent_name    TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			recorded      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS provenance_entries (
			id               TEXT PRIMARY KEY,
			target_reference TEXT NOT NULL,
			agent_name       TEXT NOT NULL,
			recorded         TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure audit schema: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) SaveEvent(ctx context.Context, event Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (id, action, outcome, agent_name, resource_type, recorded)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.Action, event.Outcome, event.AgentName, event.ResourceType, event.Recorded)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *PGRepository) SaveProvenance(ctx context.Context, prov Provenance) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO provenance_entries (id, target_reference, agent_name, recorded)
		 VALUES ($1, $2, $3, $4)`,
		prov.ID, prov.TargetReference, prov.AgentName, prov.Recorded)
	if err != nil {
		return fmt.Errorf("insert provenance: %w", err)
	}
	return nil
}

func (r *PGRepository) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, action, outcome, agent_name, resource_type, recorded
		 FROM audit_events ORDER BY recorded`)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Action, &e.Outcome, &e.AgentName, &e.ResourceType, &e.Recorded); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PGRepository) ListProvenance(ctx context.Context) ([]Provenance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, target_reference, agent_name, recorded
		 FROM provenance_entries ORDER BY recorded`)
	if err != nil {
		return nil, fmt.Errorf("list provenance: %w", err)
	}
	defer rows.Close()

	provs := []Provenance{}
	for rows.Next() {
		var p Provenance
		if err := rows.Scan(&p.ID, &p.TargetReference, &p.AgentName, &p.Recorded); err != nil {
			return nil, fmt.Errorf("scan provenance: %w", err)
		}
		provs = append(provs, p)
	}
	return provs, rows.Err()
}
