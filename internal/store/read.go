package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

// Event describes a stored record without loading its entries.
type Event struct {
	ID         string `json:"id"`
	Digest     string `json:"digest"`
	Seq        int64  `json:"seq"`
	Summary    string `json:"summary,omitempty"`
	Particles  int    `json:"particles"`
	Unphysical bool   `json:"unphysical"`
}

// ReadRecord loads the record stored under id. The entries come back in
// stored order with their daughter ranges untouched; a non-empty summary is
// attached as a ghep.Label. opts configure the returned record.
//
// Returns an error wrapping ErrNotFound if no such event exists.
func (s *Store) ReadRecord(ctx context.Context, id string, opts ...ghep.Option) (*ghep.Record, error) {
	var (
		summary                      string
		pauli, belowThr, genericErr int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT summary, pauli_blocked, below_thr_nrf, generic_err
		FROM events
		WHERE id = ?
	`, id).Scan(&summary, &pauli, &belowThr, &genericErr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read record %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	entries, err := s.readParticles(ctx, id)
	if err != nil {
		return nil, err
	}

	rec := ghep.NewRecord(append([]ghep.Option{ghep.WithCapacity(len(entries))}, opts...)...)
	rec.Restore(entries)
	if summary != "" {
		rec.AttachSummary(ghep.Label(summary))
	}
	rec.SetPauliBlocked(pauli != 0)
	rec.SetBelowThrNRF(belowThr != 0)
	rec.SetGenericErr(genericErr != 0)
	return rec, nil
}

func (s *Store) readParticles(ctx context.Context, id string) ([]*particle.Particle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pdg, status, mother1, mother2, daughter1, daughter2, px, py, pz, e, x, y, z, t
		FROM particles
		WHERE event_id = ?
		ORDER BY pos ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query particles: %w", err)
	}
	defer rows.Close()

	var entries []*particle.Particle
	for rows.Next() {
		p, err := scanParticle(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate particles: %w", err)
	}
	return entries, nil
}

// EventByDigest returns the ID of the event with the given content digest.
func (s *Store) EventByDigest(ctx context.Context, sum string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM events WHERE digest = ?`, sum).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("event with digest %s: %w", sum, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("event by digest: %w", err)
	}
	return id, nil
}

// ListEvents returns every stored event ordered by seq ASC, id ASC COLLATE
// BINARY. Returns an empty slice (not nil) for an empty store.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.digest, e.seq, e.summary,
		       e.pauli_blocked OR e.below_thr_nrf OR e.generic_err,
		       (SELECT COUNT(*) FROM particles p WHERE p.event_id = e.id)
		FROM events e
		ORDER BY e.seq ASC, e.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			ev         Event
			unphysical int
		)
		if err := rows.Scan(&ev.ID, &ev.Digest, &ev.Seq, &ev.Summary, &unphysical, &ev.Particles); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Unphysical = unphysical != 0
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CountSpecies returns how many stored entries, across all events, have the
// given PDG code and status.
func (s *Store) CountSpecies(ctx context.Context, code int, status particle.Status) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM particles WHERE pdg = ? AND status = ?
	`, code, int(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count species: %w", err)
	}
	return n, nil
}
