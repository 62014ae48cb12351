package queryir

import "github.com/roach88/ghep/internal/particle"

// Field names an entry attribute. The names are also the column names of the
// particles table.
type Field string

const (
	FieldPDG       Field = "pdg"
	FieldStatus    Field = "status"
	FieldMother1   Field = "mother1"
	FieldMother2   Field = "mother2"
	FieldDaughter1 Field = "daughter1"
	FieldDaughter2 Field = "daughter2"
	FieldPx        Field = "px"
	FieldPy        Field = "py"
	FieldPz        Field = "pz"
	FieldE         Field = "e"
	FieldX         Field = "x"
	FieldY         Field = "y"
	FieldZ         Field = "z"
	FieldT         Field = "t"
)

var intFields = map[Field]func(*particle.Particle) int{
	FieldPDG:       func(p *particle.Particle) int { return p.PDG },
	FieldStatus:    func(p *particle.Particle) int { return int(p.Status) },
	FieldMother1:   func(p *particle.Particle) int { return p.FirstMother },
	FieldMother2:   func(p *particle.Particle) int { return p.LastMother },
	FieldDaughter1: func(p *particle.Particle) int { return p.FirstDaughter },
	FieldDaughter2: func(p *particle.Particle) int { return p.LastDaughter },
}

var floatFields = map[Field]func(*particle.Particle) float64{
	FieldPx: func(p *particle.Particle) float64 { return p.P4.X },
	FieldPy: func(p *particle.Particle) float64 { return p.P4.Y },
	FieldPz: func(p *particle.Particle) float64 { return p.P4.Z },
	FieldE:  func(p *particle.Particle) float64 { return p.P4.T },
	FieldX:  func(p *particle.Particle) float64 { return p.X4.X },
	FieldY:  func(p *particle.Particle) float64 { return p.X4.Y },
	FieldZ:  func(p *particle.Particle) float64 { return p.X4.Z },
	FieldT:  func(p *particle.Particle) float64 { return p.X4.T },
}

// IsInt reports whether f is an integer attribute (codes and links).
func (f Field) IsInt() bool {
	_, ok := intFields[f]
	return ok
}

// IsKnown reports whether f names an entry attribute.
func (f Field) IsKnown() bool {
	_, ok := floatFields[f]
	return ok || f.IsInt()
}

// value reads f from p as float64. Unknown fields read as NaN, which never
// compares true.
func (f Field) value(p *particle.Particle) float64 {
	if get, ok := intFields[f]; ok {
		return float64(get(p))
	}
	if get, ok := floatFields[f]; ok {
		return get(p)
	}
	return nan
}
