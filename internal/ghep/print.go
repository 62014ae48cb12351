package ghep

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/ghep/internal/particle"
)

const ruleWidth = 123

// Balance returns the final-state minus initial-state 4-momentum. Only real
// and fake particles take part; nuclei are ignored. Stable final-state
// entries add, initial-state and nucleon-target entries subtract.
func (r *Record) Balance() particle.LorentzVector {
	var sum particle.LorentzVector
	for _, p := range r.seq.All() {
		if !p.IsParticle() && !p.IsFake() {
			continue
		}
		switch {
		case p.Status == particle.StatusStableFinalState:
			sum = sum.Add(p.P4)
		case p.Status.IsInitial():
			sum = sum.Sub(p.P4)
		}
	}
	return sum
}

// Print renders the record as a table followed by the Fin-Init balance and
// the flags. Off-shell entries show the nominal mass padded with '*' and the
// invariant mass of their 4-momentum.
func (r *Record) Print(w io.Writer) error {
	var b strings.Builder
	rule := " |" + strings.Repeat("-", ruleWidth) + "|\n"

	b.WriteString("\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, " | %3s | %-12s | %3s | %10s | %-9s | %-9s | %9s | %9s | %9s | %9s | %9s |\n",
		"Idx", "Name", "Ist", "PDG", "Mother", "Daughter", "Px", "Py", "Pz", "E", "m")
	b.WriteString(rule)

	for i, p := range r.seq.All() {
		fmt.Fprintf(&b, " | %3d | %-12s | %3d | %10d | %4d %4d | %4d %4d | %9.3f | %9.3f | %9.3f | %9.3f | ",
			i, p.Name(), int(p.Status), p.PDG,
			p.FirstMother, p.LastMother, p.FirstDaughter, p.LastDaughter,
			p.P4.X, p.P4.Y, p.P4.Z, p.P4.T)
		if p.IsOnMassShell() {
			fmt.Fprintf(&b, "%9.3f |\n", p.Mass())
		} else {
			m := fmt.Sprintf("%.3f", p.Mass())
			fmt.Fprintf(&b, "%s%s | %.3f\n", strings.Repeat("*", max(9-len(m), 0)), m, p.P4.M())
		}
	}
	b.WriteString(rule)

	sum := r.Balance()
	fmt.Fprintf(&b, " | %-61s | %9.3f | %9.3f | %9.3f | %9.3f | %9s |\n",
		"Fin-Init:", sum.X, sum.Y, sum.Z, sum.T, "")
	b.WriteString(rule)

	fmt.Fprintf(&b, " | FLAGS: PauliBlock......%s | BelowThrNRF......%s | GenericErr......%s | UnPhysical......%s |\n",
		onOff(r.IsPauliBlocked()), onOff(r.IsBelowThrNRF()), onOff(r.GenericErr()), onOff(r.IsUnphysical()))
	b.WriteString(rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the record with Print.
func (r *Record) String() string {
	var b strings.Builder
	_ = r.Print(&b)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "[on] "
	}
	return "[off]"
}
