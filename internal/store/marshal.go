package store

import (
	"fmt"

	"github.com/roach88/ghep/internal/particle"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanParticle reads one particles row in the column order used by
// readParticles.
func scanParticle(row rowScanner) (*particle.Particle, error) {
	var (
		p      particle.Particle
		status int
	)
	err := row.Scan(
		&p.PDG, &status,
		&p.FirstMother, &p.LastMother, &p.FirstDaughter, &p.LastDaughter,
		&p.P4.X, &p.P4.Y, &p.P4.Z, &p.P4.T,
		&p.X4.X, &p.X4.Y, &p.X4.Z, &p.X4.T,
	)
	if err != nil {
		return nil, fmt.Errorf("scan particle: %w", err)
	}
	p.Status = particle.Status(status)
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
