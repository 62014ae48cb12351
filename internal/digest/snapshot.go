package digest

import (
	"encoding"
	"fmt"

	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

// Snapshot is a plain-data view of a record.
type Snapshot struct {
	Summary   string  `json:"summary,omitempty"`
	Flags     Flags   `json:"flags"`
	Particles []Entry `json:"particles"`
}

// Flags mirrors the outcome flags of a record.
type Flags struct {
	PauliBlocked bool `json:"pauli_blocked"`
	BelowThrNRF  bool `json:"below_thr_nrf"`
	GenericErr   bool `json:"generic_err"`
	Unphysical   bool `json:"unphysical"`
}

// Entry is one record entry. Mothers and Daughters are [first, last].
type Entry struct {
	Pos       int             `json:"pos"`
	PDG       int             `json:"pdg"`
	Name      string          `json:"name"`
	Status    particle.Status `json:"status"`
	Mothers   [2]int          `json:"mothers"`
	Daughters [2]int          `json:"daughters"`
	P4        [4]float64      `json:"p4"`
	X4        [4]float64      `json:"x4"`
}

// Take captures r. The summary is included only when it implements
// encoding.TextMarshaler; other summaries are opaque and leave Summary empty.
func Take(r *ghep.Record) (Snapshot, error) {
	s := Snapshot{
		Flags: Flags{
			PauliBlocked: r.IsPauliBlocked(),
			BelowThrNRF:  r.IsBelowThrNRF(),
			GenericErr:   r.GenericErr(),
			Unphysical:   r.IsUnphysical(),
		},
		Particles: make([]Entry, 0, r.Len()),
	}
	if r.HasSummary() {
		if tm, ok := r.Summary().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return Snapshot{}, fmt.Errorf("marshal summary: %w", err)
			}
			s.Summary = string(text)
		}
	}
	for i, p := range r.All() {
		s.Particles = append(s.Particles, Entry{
			Pos:       i,
			PDG:       p.PDG,
			Name:      p.Name(),
			Status:    p.Status,
			Mothers:   [2]int{p.FirstMother, p.LastMother},
			Daughters: [2]int{p.FirstDaughter, p.LastDaughter},
			P4:        [4]float64{p.P4.X, p.P4.Y, p.P4.Z, p.P4.T},
			X4:        [4]float64{p.X4.X, p.X4.Y, p.X4.Z, p.X4.T},
		})
	}
	return s, nil
}

// Particle rebuilds the record entry e describes.
func (e Entry) Particle() *particle.Particle {
	return particle.New(e.PDG, e.Status,
		e.Mothers[0], e.Mothers[1], e.Daughters[0], e.Daughters[1],
		particle.Vec4(e.P4[0], e.P4[1], e.P4[2], e.P4[3]),
		particle.Vec4(e.X4[0], e.X4[1], e.X4[2], e.X4[3]))
}

// toCanonicalMap converts s to the value tree MarshalCanonical accepts.
func (s Snapshot) toCanonicalMap() map[string]any {
	particles := make([]any, len(s.Particles))
	for i, e := range s.Particles {
		particles[i] = map[string]any{
			"pos":       e.Pos,
			"pdg":       e.PDG,
			"name":      e.Name,
			"status":    e.Status.String(),
			"mothers":   []any{e.Mothers[0], e.Mothers[1]},
			"daughters": []any{e.Daughters[0], e.Daughters[1]},
			"p4":        floats(e.P4),
			"x4":        floats(e.X4),
		}
	}
	m := map[string]any{
		"flags": map[string]any{
			"pauli_blocked": s.Flags.PauliBlocked,
			"below_thr_nrf": s.Flags.BelowThrNRF,
			"generic_err":   s.Flags.GenericErr,
			"unphysical":    s.Flags.Unphysical,
		},
		"particles": particles,
	}
	if s.Summary != "" {
		m["summary"] = s.Summary
	}
	return m
}

// Canonical returns the canonical JSON encoding of s.
func (s Snapshot) Canonical() ([]byte, error) {
	return MarshalCanonical(s.toCanonicalMap())
}

func floats(v [4]float64) []any {
	return []any{v[0], v[1], v[2], v[3]}
}
