package pdg

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var tableYAML []byte

// Entry describes one particle species.
type Entry struct {
	Code int     `yaml:"code"`
	Name string  `yaml:"name"`
	Mass float64 `yaml:"mass"`
	Fake bool    `yaml:"fake,omitempty"`
}

type table struct {
	Particles []Entry `yaml:"particles"`
}

var (
	loadOnce sync.Once
	byCode   map[int]Entry
	loadErr  error
)

func load() {
	var t table
	if err := yaml.Unmarshal(tableYAML, &t); err != nil {
		loadErr = fmt.Errorf("parse pdg table: %w", err)
		return
	}
	byCode = make(map[int]Entry, len(t.Particles))
	for _, e := range t.Particles {
		if _, dup := byCode[e.Code]; dup {
			loadErr = fmt.Errorf("parse pdg table: duplicate code %d", e.Code)
			return
		}
		e.Name = norm.NFC.String(e.Name)
		byCode[e.Code] = e
	}
}

// Lookup returns the table entry for code. Nuclei missing from the table are
// synthesised from their 10LZZZAAAI code with a mass of A nucleon masses.
func Lookup(code int) (Entry, bool) {
	loadOnce.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
	if e, ok := byCode[code]; ok {
		return e, true
	}
	if IsNucleus(code) {
		z, a := IonZ(code), IonA(code)
		return Entry{
			Code: code,
			Name: "Ion(Z=" + strconv.Itoa(z) + ",A=" + strconv.Itoa(a) + ")",
			Mass: float64(a) * AtomicMassUnit,
		}, true
	}
	return Entry{}, false
}

// AtomicMassUnit in GeV.
const AtomicMassUnit = 0.9314941

// Name returns the printable name for code, or the code itself when unknown.
func Name(code int) string {
	if e, ok := Lookup(code); ok {
		return e.Name
	}
	return strconv.Itoa(code)
}

// Mass returns the nominal mass for code. Unknown codes have mass 0.
func Mass(code int) float64 {
	e, _ := Lookup(code)
	return e.Mass
}

// IsNucleus reports whether code uses the 10LZZZAAAI ion convention.
func IsNucleus(code int) bool {
	return code > 1000000000 && code < 2000000000
}

// IonZ extracts the proton number from an ion code.
func IonZ(code int) int {
	return (code / 10000) % 1000
}

// IonA extracts the mass number from an ion code.
func IonA(code int) int {
	return (code / 10) % 1000
}

// IsFake reports whether code is a generator pseudo-particle used to keep
// energy-momentum bookkeeping (rootino, bindino, hadronic blobs, ...).
func IsFake(code int) bool {
	e, ok := Lookup(code)
	return ok && e.Fake
}

// IsParticle reports whether code is a known, real, non-nucleus particle.
func IsParticle(code int) bool {
	if IsNucleus(code) {
		return false
	}
	e, ok := Lookup(code)
	return ok && !e.Fake
}
