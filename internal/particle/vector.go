package particle

import (
	"fmt"
	"math"
)

// LorentzVector is a four-component value used both for momenta
// (Px, Py, Pz, E) and for positions (X, Y, Z, T).
type LorentzVector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	T float64 `json:"t" yaml:"t"`
}

// Vec4 builds a LorentzVector from its components.
func Vec4(x, y, z, t float64) LorentzVector {
	return LorentzVector{X: x, Y: y, Z: z, T: t}
}

// Add returns v + o.
func (v LorentzVector) Add(o LorentzVector) LorentzVector {
	return LorentzVector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, T: v.T + o.T}
}

// Sub returns v - o.
func (v LorentzVector) Sub(o LorentzVector) LorentzVector {
	return LorentzVector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, T: v.T - o.T}
}

// M2 returns the invariant mass squared, T² - X² - Y² - Z².
func (v LorentzVector) M2() float64 {
	return v.T*v.T - v.X*v.X - v.Y*v.Y - v.Z*v.Z
}

// M returns the invariant mass. Space-like vectors give -sqrt(-M2), the
// same sign convention ROOT uses.
func (v LorentzVector) M() float64 {
	m2 := v.M2()
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}
	return math.Sqrt(m2)
}

// String formats the vector as (x, y, z, t) with three decimals.
func (v LorentzVector) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", v.X, v.Y, v.Z, v.T)
}
