package particle

import (
	"math"

	"github.com/roach88/ghep/internal/pdg"
)

// NoIndex marks an absent mother or daughter link.
const NoIndex = -1

// massShellTolerance is the allowed |m(P4) - m(PDG)| in GeV for an entry to
// count as on-mass-shell.
const massShellTolerance = 1e-3

// Particle is one entry of an event record.
//
// Links are positions into the owning record. FirstDaughter..LastDaughter is
// an inclusive range and is maintained by the record; callers set only the
// mother links. LastMother is informational (two-mother vertices) and never
// drives genealogy logic.
type Particle struct {
	PDG           int           `json:"pdg"`
	Status        Status        `json:"status"`
	FirstMother   int           `json:"first_mother"`
	LastMother    int           `json:"last_mother"`
	FirstDaughter int           `json:"first_daughter"`
	LastDaughter  int           `json:"last_daughter"`
	P4            LorentzVector `json:"p4"`
	X4            LorentzVector `json:"x4"`
}

// New builds an entry with the full field list.
func New(code int, status Status, mom1, mom2, dau1, dau2 int, p4, x4 LorentzVector) *Particle {
	return &Particle{
		PDG:           code,
		Status:        status,
		FirstMother:   mom1,
		LastMother:    mom2,
		FirstDaughter: dau1,
		LastDaughter:  dau2,
		P4:            p4,
		X4:            x4,
	}
}

// Name returns the PDG name of the entry.
func (p *Particle) Name() string {
	return pdg.Name(p.PDG)
}

// Mass returns the nominal (table) mass of the species.
func (p *Particle) Mass() float64 {
	return pdg.Mass(p.PDG)
}

// IsOnMassShell reports whether the invariant mass of P4 agrees with the
// nominal mass.
func (p *Particle) IsOnMassShell() bool {
	return math.Abs(p.P4.M()-p.Mass()) < massShellTolerance
}

// HasDaughters reports whether the entry owns a daughter range.
func (p *Particle) HasDaughters() bool {
	return p.FirstDaughter != NoIndex
}

// HasMother reports whether the entry points at a first mother.
func (p *Particle) HasMother() bool {
	return p.FirstMother != NoIndex
}

// IsFake reports whether the entry is a generator pseudo-particle.
func (p *Particle) IsFake() bool {
	return pdg.IsFake(p.PDG)
}

// IsNucleus reports whether the entry is an ion.
func (p *Particle) IsNucleus() bool {
	return pdg.IsNucleus(p.PDG)
}

// IsParticle reports whether the entry is a real, non-nucleus particle.
func (p *Particle) IsParticle() bool {
	return pdg.IsParticle(p.PDG)
}

// SetDaughters sets the inclusive daughter range.
func (p *Particle) SetDaughters(first, last int) {
	p.FirstDaughter = first
	p.LastDaughter = last
}

// ClearDaughters empties the daughter range.
func (p *Particle) ClearDaughters() {
	p.SetDaughters(NoIndex, NoIndex)
}

// SetVertex overwrites the 4-position.
func (p *Particle) SetVertex(x, y, z, t float64) {
	p.X4 = Vec4(x, y, z, t)
}

// Clone returns a deep copy of the entry.
func (p *Particle) Clone() *Particle {
	c := *p
	return &c
}

// CopyFrom overwrites every field of p with the content of o.
func (p *Particle) CopyFrom(o *Particle) {
	*p = *o
}

// Swap exchanges every field of p and o.
func (p *Particle) Swap(o *Particle) {
	*p, *o = *o, *p
}

// Compare reports whether p and o have identical content.
func (p *Particle) Compare(o *Particle) bool {
	if p == nil || o == nil {
		return p == o
	}
	return *p == *o
}
