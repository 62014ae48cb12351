package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/ghep"
)

// WriteRecord stores rec under id with logical sequence number seq.
//
// Writes are idempotent by content: if a record with the same digest is
// already stored, nothing is written and the existing event ID is returned
// with inserted=false. Reusing id for different content is an error.
func (s *Store) WriteRecord(ctx context.Context, id string, seq int64, rec *ghep.Record) (storedID string, inserted bool, err error) {
	snap, err := digest.Take(rec)
	if err != nil {
		return "", false, fmt.Errorf("write record: %w", err)
	}
	canonical, err := snap.Canonical()
	if err != nil {
		return "", false, fmt.Errorf("write record: %w", err)
	}
	sum, err := snap.Digest()
	if err != nil {
		return "", false, fmt.Errorf("write record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO events
		(id, digest, seq, summary, pauli_blocked, below_thr_nrf, generic_err, canonical)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		id,
		sum,
		seq,
		snap.Summary,
		boolToInt(snap.Flags.PauliBlocked),
		boolToInt(snap.Flags.BelowThrNRF),
		boolToInt(snap.Flags.GenericErr),
		string(canonical),
	)
	if err != nil {
		return "", false, fmt.Errorf("write record: insert event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("write record: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE digest = ?`, sum).Scan(&storedID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, fmt.Errorf("write record: event id %q already holds different content", id)
		}
		if err != nil {
			return "", false, fmt.Errorf("write record: select existing: %w", err)
		}
		return storedID, false, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO particles
		(event_id, pos, pdg, status, mother1, mother2, daughter1, daughter2, px, py, pz, e, x, y, z, t)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", false, fmt.Errorf("write record: prepare particles: %w", err)
	}
	defer stmt.Close()

	for i, p := range rec.All() {
		_, err := stmt.ExecContext(ctx,
			id, i, p.PDG, int(p.Status),
			p.FirstMother, p.LastMother, p.FirstDaughter, p.LastDaughter,
			p.P4.X, p.P4.Y, p.P4.Z, p.P4.T,
			p.X4.X, p.X4.Y, p.X4.Z, p.X4.T,
		)
		if err != nil {
			return "", false, fmt.Errorf("write record: insert particle %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write record: commit: %w", err)
	}

	return id, true, nil
}

// DeleteEvent removes an event and its entries. Deleting a missing event
// returns ErrNotFound.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete event %q: %w", id, ErrNotFound)
	}
	return nil
}
