package ghep

// Label is a Summary that carries nothing but a short description of the
// interaction, such as "QEL-CC". It is what the store and the scenario
// harness attach when no richer summary is available.
type Label string

// Clone returns l; labels are immutable values.
func (l Label) Clone() Summary { return l }

// MarshalText returns the label text.
func (l Label) MarshalText() ([]byte, error) { return []byte(l), nil }

func (l Label) String() string { return string(l) }
