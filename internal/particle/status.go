package particle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the role tag of an entry. Numeric values follow the GHEP
// convention so that persisted records stay comparable with other tools.
type Status int

const (
	StatusUndefined                Status = -1
	StatusInitialState             Status = 0
	StatusStableFinalState         Status = 1
	StatusIntermediateState        Status = 2
	StatusDecayedState             Status = 3
	StatusNucleonTarget            Status = 11
	StatusDISPreFragmHadronicState Status = 12
	StatusPreDecayResonantState    Status = 13
	StatusHadronInTheNucleus       Status = 14
	StatusFinalStateNuclearRemnant Status = 15
	StatusNucleonClusterTarget     Status = 16
)

var statusNames = map[Status]string{
	StatusUndefined:                "undefined",
	StatusInitialState:             "initial_state",
	StatusStableFinalState:         "stable_final_state",
	StatusIntermediateState:        "intermediate_state",
	StatusDecayedState:             "decayed_state",
	StatusNucleonTarget:            "nucleon_target",
	StatusDISPreFragmHadronicState: "dis_prefragm_hadronic_state",
	StatusPreDecayResonantState:    "predecay_resonant_state",
	StatusHadronInTheNucleus:       "hadron_in_the_nucleus",
	StatusFinalStateNuclearRemnant: "final_state_nuclear_remnant",
	StatusNucleonClusterTarget:     "nucleon_cluster_target",
}

// String returns the snake_case name used in scenarios and JSON output.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// IsInitial reports whether the status marks an incoming entry (probe or
// struck nucleon). Such entries are never moved by compaction.
func (s Status) IsInitial() bool {
	return s == StatusInitialState || s == StatusNucleonTarget
}

// ParseStatus accepts either a snake_case name or the numeric code.
func ParseStatus(text string) (Status, error) {
	for s, name := range statusNames {
		if name == text {
			return s, nil
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return StatusUndefined, fmt.Errorf("unknown status %q", text)
	}
	if _, ok := statusNames[Status(n)]; !ok {
		return StatusUndefined, fmt.Errorf("unknown status code %d", n)
	}
	return Status(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON accepts a JSON string holding a name or code, or a bare
// numeric code.
func (s *Status) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		return s.UnmarshalText([]byte(text))
	}
	return s.UnmarshalText(bytes.TrimSpace(data))
}
