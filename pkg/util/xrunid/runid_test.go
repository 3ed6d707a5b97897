package xrunid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New()
	require.NoError(t, err)
	return g
}

func TestNextUniqueAndSortable(t *testing.T) {
	g := newGenerator(t)

	prev, err := g.Next()
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		id, err := g.Next()
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNextStringRoundTrip(t *testing.T) {
	g := newGenerator(t)

	s, err := g.NextString()
	require.NoError(t, err)
	assert.NotEmpty(t, s)

	id, err := Parse(s)
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("not a base36 string!")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = Parse("0")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestWithMachineID(t *testing.T) {
	g, err := New(WithMachineID(func() (int, error) { return 42, nil }))
	require.NoError(t, err)

	_, err = g.Next()
	require.NoError(t, err)
}

func TestWithMachineIDError(t *testing.T) {
	_, err := New(WithMachineID(func() (int, error) {
		return 0, errors.New("no machine id")
	}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConcurrentUnique(t *testing.T) {
	g := newGenerator(t)

	const n = 8
	const per = 200
	ids := make([][]int64, n)

	var eg errgroup.Group
	for w := 0; w < n; w++ {
		eg.Go(func() error {
			ids[w] = make([]int64, 0, per)
			for i := 0; i < per; i++ {
				id, err := g.Next()
				if err != nil {
					return err
				}
				ids[w] = append(ids[w], id)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	seen := make(map[int64]struct{}, n*per)
	for _, batch := range ids {
		for _, id := range batch {
			_, dup := seen[id]
			assert.False(t, dup, "duplicate id %d", id)
			seen[id] = struct{}{}
		}
	}
}
