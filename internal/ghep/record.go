package ghep

import (
	"io"
	"iter"
	"log/slog"

	"github.com/roach88/ghep/internal/particle"
)

// Stream is the value of the "stream" attribute on every record diagnostic.
const Stream = "GHEP"

// Summary is the interaction summary attached to a record. The record never
// inspects it; it only owns it and clones it on copy.
type Summary interface {
	Clone() Summary
}

// Record is a GHEP event record: the particle sequence, its genealogy
// maintenance, an optional interaction summary and the outcome flags.
type Record struct {
	seq       *Sequence
	compactor *Compactor
	logger    *slog.Logger
	summary   Summary

	pauliBlocked bool
	belowThrNRF  bool
	genericErr   bool
}

// Option configures a Record.
type Option func(*recordConfig)

type recordConfig struct {
	logger   *slog.Logger
	capacity int
}

// WithLogger sets the logger for record diagnostics. The record adds
// stream=GHEP to every message. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *recordConfig) {
		c.logger = logger
	}
}

// WithCapacity pre-sizes the particle sequence.
func WithCapacity(n int) Option {
	return func(c *recordConfig) {
		c.capacity = n
	}
}

// NewRecord creates an empty record with all flags cleared.
func NewRecord(opts ...Option) *Record {
	cfg := recordConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = discardLogger()
	}
	logger = logger.With("stream", Stream)

	seq := NewSequence(logger, cfg.capacity)
	return &Record{
		seq:       seq,
		compactor: NewCompactor(seq, logger),
		logger:    logger,
	}
}

// Clone returns a deep copy of r sharing only its logger.
func (r *Record) Clone() *Record {
	c := &Record{logger: r.logger}
	c.seq = NewSequence(r.logger, r.seq.Len())
	c.compactor = NewCompactor(c.seq, r.logger)
	c.CopyFrom(r)
	return c
}

// CopyFrom resets r and then deep-copies every entry, a clone of the
// summary, and the flags of other.
func (r *Record) CopyFrom(other *Record) {
	if other == r {
		return
	}
	r.Reset()
	for _, p := range other.seq.All() {
		r.seq.Append(p)
	}
	r.compactor.rebuildPending()
	if other.summary != nil {
		r.summary = other.summary.Clone()
	}
	r.pauliBlocked = other.pauliBlocked
	r.belowThrNRF = other.belowThrNRF
	r.genericErr = other.genericErr
}

// Restore replaces the entries of r with copies of entries, keeping their
// order and daughter ranges verbatim. It is meant for reloading a record that
// was maintained by a Record before, such as one read back from storage. The
// summary and flags are left untouched.
func (r *Record) Restore(entries []*particle.Particle) {
	r.seq.reset()
	r.compactor.reset()
	for _, p := range entries {
		r.seq.Append(p)
	}
	r.compactor.rebuildPending()
}

// Reset drops every entry and the summary and clears the flags.
func (r *Record) Reset() {
	r.logger.Debug("resetting record")
	r.seq.reset()
	r.compactor.reset()
	r.summary = nil
	r.pauliBlocked = false
	r.belowThrNRF = false
	r.genericErr = false
}

// AttachSummary stores s as the record's summary, replacing any previous
// one.
func (r *Record) AttachSummary(s Summary) {
	r.summary = s
}

// Summary returns the attached summary, or nil with a warning.
func (r *Record) Summary() Summary {
	if r.summary == nil {
		r.logger.Warn("returning nil interaction summary")
	}
	return r.summary
}

// HasSummary reports whether a summary is attached.
func (r *Record) HasSummary() bool {
	return r.summary != nil
}

// AddParticle appends a copy of p and updates its mother's daughter range,
// compacting the record if needed. p's daughter range is ignored: daughter
// ranges are owned by the record.
func (r *Record) AddParticle(p *particle.Particle) {
	entry := p.Clone()
	entry.ClearDaughters()
	pos := r.seq.Append(entry)
	r.logger.Info("adding particle", "pdg", p.PDG, "status", p.Status, "pos", pos)
	r.compactor.Update(pos)
}

// Add appends an entry built from a full field list.
func (r *Record) Add(code int, status particle.Status, mom1, mom2, dau1, dau2 int, p4, x4 particle.LorentzVector) {
	r.AddParticle(particle.New(code, status, mom1, mom2, dau1, dau2, p4, x4))
}

// AddComponents appends an entry built from raw momentum and position
// components.
func (r *Record) AddComponents(code int, status particle.Status, mom1, mom2, dau1, dau2 int,
	px, py, pz, e, x, y, z, t float64) {
	r.Add(code, status, mom1, mom2, dau1, dau2, particle.Vec4(px, py, pz, e), particle.Vec4(x, y, z, t))
}

// Particle returns the entry at pos, or nil with a warning.
func (r *Record) Particle(pos int) *particle.Particle {
	return r.seq.At(pos)
}

// Len returns the number of entries.
func (r *Record) Len() int {
	return r.seq.Len()
}

// All iterates over the entries in record order. Entries must not be
// modified through the iterator.
func (r *Record) All() iter.Seq2[int, *particle.Particle] {
	return r.seq.All()
}

// FindParticle returns the first entry at or after start with the given PDG
// code and status, or nil with a warning.
func (r *Record) FindParticle(code int, status particle.Status, start int) *particle.Particle {
	pos := r.seq.FindFirst(matchCodeStatus(code, status), start)
	if pos == particle.NoIndex {
		r.logger.Warn("no particle found", "start", start, "pdg", code, "status", status)
		return nil
	}
	return r.seq.entries[pos]
}

// ParticlePosition returns the position of the first entry at or after start
// with the given PDG code and status, or -1 with a warning.
func (r *Record) ParticlePosition(code int, status particle.Status, start int) int {
	pos := r.seq.FindFirst(matchCodeStatus(code, status), start)
	if pos == particle.NoIndex {
		r.logger.Warn("returning invalid record position", "start", start, "pdg", code, "status", status)
	}
	return pos
}

// PositionOf returns the position of the first entry at or after start whose
// content equals p, or -1 with a warning.
func (r *Record) PositionOf(p *particle.Particle, start int) int {
	pos := r.seq.FindFirst(p.Compare, start)
	if pos == particle.NoIndex {
		r.logger.Warn("returning invalid record position", "start", start, "pdg", p.PDG)
	}
	return pos
}

// ShiftVertex adds v to the 4-position of every entry.
func (r *Record) ShiftVertex(v particle.LorentzVector) {
	r.logger.Info("shifting vertex", "x4", v.String())
	for _, p := range r.seq.All() {
		p.X4 = p.X4.Add(v)
	}
}

// Compactions returns how many full compactions this record has run since
// it was created or last reset.
func (r *Record) Compactions() int {
	return r.compactor.Compactions()
}

// Compact forces a full compaction pass.
func (r *Record) Compact() {
	r.compactor.Compact()
}

// HasCompactDaughterList reports whether the daughters of the entry at pos
// are adjacent.
func (r *Record) HasCompactDaughterList(pos int) bool {
	return r.compactor.IsCompact(pos)
}

// SetPauliBlocked switches the Pauli-blocking flag.
func (r *Record) SetPauliBlocked(on bool) {
	r.logger.Info("switching pauli block flag", "on", on)
	r.pauliBlocked = on
}

// SetBelowThrNRF switches the below-threshold-in-nucleon-rest-frame flag.
func (r *Record) SetBelowThrNRF(on bool) {
	r.logger.Info("switching below threshold in nucleon rest frame flag", "on", on)
	r.belowThrNRF = on
}

// SetGenericErr switches the generic error flag.
func (r *Record) SetGenericErr(on bool) {
	r.logger.Info("switching generic error flag", "on", on)
	r.genericErr = on
}

// IsPauliBlocked reports the Pauli-blocking flag.
func (r *Record) IsPauliBlocked() bool { return r.pauliBlocked }

// IsBelowThrNRF reports the below-threshold flag.
func (r *Record) IsBelowThrNRF() bool { return r.belowThrNRF }

// GenericErr reports the generic error flag.
func (r *Record) GenericErr() bool { return r.genericErr }

// IsUnphysical reports whether any outcome flag is set.
func (r *Record) IsUnphysical() bool {
	return r.pauliBlocked || r.belowThrNRF || r.genericErr
}

func matchCodeStatus(code int, status particle.Status) func(*particle.Particle) bool {
	return func(p *particle.Particle) bool {
		return p.PDG == code && p.Status == status
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
