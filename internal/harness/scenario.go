package harness

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ghep/internal/particle"
)

//go:embed schema.cue
var schemaCUE string

// Scenario defines one event record to build and the checks to run on it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Summary is attached to the record as a ghep.Label when non-empty.
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`

	// Particles are appended to the record in order.
	Particles []ParticleStep `yaml:"particles" json:"particles"`

	// Flags are switched on after the vertex shift.
	Flags Flags `yaml:"flags,omitempty" json:"flags"`

	// ShiftVertex is added to every entry's 4-position after the last append.
	ShiftVertex []float64 `yaml:"shift_vertex,omitempty" json:"shift_vertex,omitempty"`

	// Assertions validate the final record.
	Assertions []Assertion `yaml:"assertions" json:"assertions"`
}

// ParticleStep is one append. A missing mother means no mother.
type ParticleStep struct {
	PDG     int             `yaml:"pdg" json:"pdg"`
	Status  particle.Status `yaml:"status" json:"status"`
	Mother  *int            `yaml:"mother,omitempty" json:"mother,omitempty"`
	Mother2 *int            `yaml:"mother2,omitempty" json:"mother2,omitempty"`
	P4      []float64       `yaml:"p4,omitempty" json:"p4,omitempty"`
	X4      []float64       `yaml:"x4,omitempty" json:"x4,omitempty"`
}

// Flags are the outcome flags to set on the record.
type Flags struct {
	PauliBlocked bool `yaml:"pauli_blocked,omitempty" json:"pauli_blocked,omitempty"`
	BelowThrNRF  bool `yaml:"below_thr_nrf,omitempty" json:"below_thr_nrf,omitempty"`
	GenericErr   bool `yaml:"generic_err,omitempty" json:"generic_err,omitempty"`
}

// Assertion validates the final record. Which fields are read depends on
// Type; see the package documentation.
type Assertion struct {
	Type      string           `yaml:"type" json:"type"`
	Pos       int              `yaml:"pos,omitempty" json:"pos"`
	First     int              `yaml:"first,omitempty" json:"first"`
	Last      int              `yaml:"last,omitempty" json:"last"`
	Count     int              `yaml:"count,omitempty" json:"count"`
	PDG       int              `yaml:"pdg,omitempty" json:"pdg"`
	Status    *particle.Status `yaml:"status,omitempty" json:"status,omitempty"`
	Value     bool             `yaml:"value,omitempty" json:"value"`
	P4        []float64        `yaml:"p4,omitempty" json:"p4,omitempty"`
	Tolerance float64          `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Assertion type constants.
const (
	AssertDaughters   = "daughters"
	AssertCompactions = "compactions"
	AssertParticleAt  = "particle_at"
	AssertUnphysical  = "unphysical"
	AssertBalance     = "balance"
	AssertGenealogy   = "genealogy"
)

// SchemaError reports a scenario that does not satisfy #Scenario.
type SchemaError struct {
	Source  string
	Details string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: schema violation:\n%s", e.Source, e.Details)
}

var (
	schemaMu    sync.Mutex
	schemaOnce  sync.Once
	cueCtx      *cue.Context
	scenarioDef cue.Value
	schemaErr   error
)

// scenarioSchema compiles the embedded schema once. The returned context is
// not safe for concurrent use; callers hold schemaMu.
func scenarioSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		cueCtx = cuecontext.New()
		schema := cueCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := schema.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		scenarioDef = schema.LookupPath(cue.ParsePath("#Scenario"))
		if !scenarioDef.Exists() {
			schemaErr = fmt.Errorf("compile scenario schema: #Scenario not defined")
		}
	})
	return cueCtx, scenarioDef, schemaErr
}

// checkSchema unifies v with #Scenario and requires a concrete result.
func checkSchema(source string, v cue.Value, def cue.Value) (cue.Value, error) {
	if err := v.Err(); err != nil {
		return cue.Value{}, &SchemaError{Source: source, Details: cueerrors.Details(err, nil)}
	}
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, &SchemaError{Source: source, Details: cueerrors.Details(err, nil)}
	}
	return unified, nil
}

// Validate checks s against #Scenario. Scenarios built in Go are checked
// through their JSON form.
func Validate(s *Scenario) error {
	c := *s
	if c.Particles == nil {
		c.Particles = []ParticleStep{}
	}
	data, err := json.Marshal(&c)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()
	ctx, def, err := scenarioSchema()
	if err != nil {
		return err
	}
	source := s.Name
	if source == "" {
		source = "scenario"
	}
	_, err = checkSchema(source, ctx.CompileBytes(data, cue.Filename(source+".json")), def)
	return err
}

// LoadScenario reads a scenario from a .yaml, .yml or .cue file. The raw
// document is validated against #Scenario before decoding, so missing
// required fields and unknown fields are both rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario decodes a scenario document. The format is chosen by the
// extension of name.
func ParseScenario(name string, data []byte) (*Scenario, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return parseYAML(name, data)
	case ".cue":
		return parseCUE(name, data)
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}
}

func parseYAML(name string, data []byte) (*Scenario, error) {
	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	schemaMu.Lock()
	ctx, def, err := scenarioSchema()
	if err == nil {
		_, err = checkSchema(name, ctx.BuildFile(file), def)
	}
	schemaMu.Unlock()
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

func parseCUE(name string, data []byte) (*Scenario, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	ctx, def, err := scenarioSchema()
	if err != nil {
		return nil, err
	}
	unified, err := checkSchema(name, ctx.CompileBytes(data, cue.Filename(name)), def)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := unified.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns every scenario file under dir, sorted by path.
func FindScenarios(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".cue":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	slices.Sort(paths)
	return paths, nil
}
