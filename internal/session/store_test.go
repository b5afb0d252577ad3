package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(time.Hour)
	t.Cleanup(s.Close)
	return s
}

func testReport() *report.Report {
	return &report.Report{
		Metrics: []report.Metrics{{Ingredient: "Tomatoes", UnitCost: 2.50}},
		Summary: report.Summary{TotalIngredients: 1},
	}
}

func TestPutGet(t *testing.T) {
	s := newTestStore(t)

	s.Put("abc", testReport(), time.Minute)
	got, err := s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", got.Metrics[0].Ingredient)
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetExpiredEntry(t *testing.T) {
	s := newTestStore(t)

	s.Put("abc", testReport(), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	_, err := s.Get("abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.Put("abc", testReport(), time.Minute)
	fresh := testReport()
	fresh.Metrics[0].Ingredient = "Onions"
	s.Put("abc", fresh, time.Minute)

	got, err := s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "Onions", got.Metrics[0].Ingredient)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	s.Put("abc", testReport(), time.Minute)
	s.Delete("abc")

	_, err := s.Get("abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again must not panic.
	s.Delete("abc")
}

func TestSweepRemovesExpired(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	defer s.Close()

	s.Put("short", testReport(), time.Nanosecond)
	s.Put("long", testReport(), time.Hour)

	assert.Eventually(t, func() bool { return s.Len() == 1 }, time.Second, 10*time.Millisecond)

	_, err := s.Get("long")
	assert.NoError(t, err)
}

func TestZeroTTLUsesDefault(t *testing.T) {
	s := newTestStore(t)

	s.Put("abc", testReport(), 0)
	_, err := s.Get("abc")
	assert.NoError(t, err)
}
