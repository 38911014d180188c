package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	var s Set

	s.Toggle("a")
	s.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Toggle("a")
	assert.Equal(t, []string{"b"}, s.IDs())
	assert.False(t, s.Has("a"))
}

func TestSelectAllFromEmptyIsToggle(t *testing.T) {
	visible := []string{"j3", "j1", "j2"}
	var s Set

	s.SelectAll(visible)
	assert.Equal(t, []string{"j1", "j2", "j3"}, s.IDs())

	s.SelectAll(visible)
	assert.Equal(t, 0, s.Len())
}

func TestSelectAllFromPartialSelectsEverything(t *testing.T) {
	visible := []string{"j1", "j2", "j3"}
	s := New("j2")

	s.SelectAll(visible)
	assert.Equal(t, visible, s.IDs())

	// A second call from full selection clears.
	s.SelectAll(visible)
	assert.Equal(t, 0, s.Len())
}

func TestSelectAllComparesSizeOnly(t *testing.T) {
	// Size matches but members differ: still treated as full and cleared.
	s := New("x", "y")
	s.SelectAll([]string{"j1", "j2"})
	assert.Equal(t, 0, s.Len())
}

func TestBulkDeleteAllSucceed(t *testing.T) {
	var calls []string
	res := BulkDelete(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, id string) error {
		calls = append(calls, id)
		return nil
	})

	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, []string{"a", "b", "c"}, res.Deleted)
	assert.Empty(t, res.Failed)
}

func TestBulkDeleteStopsAtFirstError(t *testing.T) {
	boom := errors.New("cannot delete")
	var calls []string
	res := BulkDelete(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, id string) error {
		calls = append(calls, id)
		if id == "b" {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Equal(t, []string{"a"}, res.Deleted)
	assert.Equal(t, "b", res.Failed)
}

func TestBulkDeleteHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	res := BulkDelete(ctx, []string{"a", "b"}, func(_ context.Context, id string) error {
		cancel()
		return nil
	})

	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, []string{"a"}, res.Deleted)
	assert.Equal(t, "b", res.Failed)
}
