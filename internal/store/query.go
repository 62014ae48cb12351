package store

import (
	"context"
	"fmt"

	"github.com/roach88/ghep/internal/queryir"
	"github.com/roach88/ghep/internal/querysql"
)

// ParticleRef locates one stored entry.
type ParticleRef struct {
	EventID string `json:"event_id"`
	Pos     int    `json:"pos"`
}

// SelectParticles returns every stored entry matching sel, ordered by event
// ID and position. Returns an empty slice (not nil) when nothing matches.
func (s *Store) SelectParticles(ctx context.Context, sel queryir.Select) ([]ParticleRef, error) {
	sql, params, err := querysql.NewSQLCompiler().Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("select particles: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("select particles: %w", err)
	}
	defer rows.Close()

	refs := []ParticleRef{}
	for rows.Next() {
		var ref ParticleRef
		if err := rows.Scan(&ref.EventID, &ref.Pos); err != nil {
			return nil, fmt.Errorf("scan particle ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate particle refs: %w", err)
	}
	return refs, nil
}

// FindEvents returns the IDs of the events satisfying q, in write order.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) FindEvents(ctx context.Context, q queryir.Events) ([]string, error) {
	sql, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event ids: %w", err)
	}
	return ids, nil
}
