package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
	"github.com/roach88/ghep/internal/testutil"
)

func TestWriteRecord_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := testRecord()
	rec.SetBelowThrNRF(true)

	id, inserted, err := s.WriteRecord(ctx, "event-1", 1, rec)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "event-1", id)

	got, err := s.ReadRecord(ctx, id)
	require.NoError(t, err)

	require.Equal(t, rec.Len(), got.Len())
	for i, p := range rec.All() {
		assert.Equal(t, *p, *got.Particle(i), "entry %d", i)
	}
	assert.Equal(t, ghep.Label("RES-CC"), got.Summary())
	assert.True(t, got.IsBelowThrNRF())
	assert.False(t, got.IsPauliBlocked())
	assert.True(t, got.IsUnphysical())
	require.NoError(t, got.CheckGenealogy())
	assert.Equal(t, recordDigest(t, rec), recordDigest(t, got))
}

func TestWriteRecord_IdempotentByContent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ids := testutil.NewFixedIDGenerator("first", "second")
	clock := testutil.NewDeterministicClock()

	id1, inserted, err := s.WriteRecord(ctx, ids.Generate(), clock.Next(), testRecord())
	require.NoError(t, err)
	assert.True(t, inserted)

	id2, inserted, err := s.WriteRecord(ctx, ids.Generate(), clock.Next(), testRecord())
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, id1, id2)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestWriteRecord_IDReuseWithDifferentContentFails(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.WriteRecord(ctx, "dup", 1, testRecord())
	require.NoError(t, err)

	other := testRecord()
	other.SetGenericErr(true)
	_, _, err = s.WriteRecord(ctx, "dup", 2, other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already holds different content")
}

func TestWriteRecord_EmptyRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, inserted, err := s.WriteRecord(ctx, "empty", 1, ghep.NewRecord())
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := s.ReadRecord(ctx, "empty")
	require.NoError(t, err)
	assert.Zero(t, got.Len())
	assert.False(t, got.HasSummary())
}

func TestReadRecord_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRecord(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventByDigest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := testRecord()

	_, _, err := s.WriteRecord(ctx, "e1", 1, rec)
	require.NoError(t, err)

	id, err := s.EventByDigest(ctx, recordDigest(t, rec))
	require.NoError(t, err)
	assert.Equal(t, "e1", id)

	_, err = s.EventByDigest(ctx, "0000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListEvents_OrderedBySeqThenID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	a := testRecord()
	b := testRecord()
	b.SetPauliBlocked(true)
	c := testRecord()
	c.ShiftVertex(particle.Vec4(0, 0, 0, 1))

	for _, w := range []struct {
		id  string
		seq int64
		rec *ghep.Record
	}{{"b", 2, b}, {"z", 1, c}, {"a", 2, a}} {
		_, _, err := s.WriteRecord(ctx, w.id, w.seq, w.rec)
		require.NoError(t, err)
	}

	events, err = s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"z", "a", "b"}, []string{events[0].ID, events[1].ID, events[2].ID})
	assert.Equal(t, 7, events[0].Particles)
	assert.Equal(t, "RES-CC", events[0].Summary)
	assert.False(t, events[1].Unphysical)
	assert.True(t, events[2].Unphysical)
}

func TestDeleteEvent_CascadesToParticles(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.WriteRecord(ctx, "gone", 1, testRecord())
	require.NoError(t, err)
	require.NoError(t, s.DeleteEvent(ctx, "gone"))

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM particles").Scan(&n))
	assert.Zero(t, n)

	require.ErrorIs(t, s.DeleteEvent(ctx, "gone"), ErrNotFound)
}

func TestCountSpecies(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := testRecord()
	b := testRecord()
	b.SetGenericErr(true)
	_, _, err := s.WriteRecord(ctx, "a", 1, a)
	require.NoError(t, err)
	_, _, err = s.WriteRecord(ctx, "b", 2, b)
	require.NoError(t, err)

	n, err := s.CountSpecies(ctx, 2212, particle.StatusStableFinalState)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CountSpecies(ctx, 111, particle.StatusStableFinalState)
	require.NoError(t, err)
	assert.Zero(t, n)
}
