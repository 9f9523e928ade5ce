package typelib

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateKeepsGoingPastErrors(t *testing.T) {
	bad := errors.New("undecodable record")
	get := func(n int) (string, error) {
		if n == 2 {
			return "", bad
		}
		return "record", nil
	}

	results := enumerate(6, get)
	require.Len(t, results, 6)

	var failed int
	for n, r := range results {
		assert.Equal(t, n, r.Index)
		if r.Err != nil {
			failed++
			assert.Empty(t, r.Value)
		} else {
			assert.Equal(t, "record", r.Value)
		}
	}
	assert.Equal(t, 1, failed)
	assert.ErrorIs(t, results[2].Err, bad)
	assert.NoError(t, results[5].Err)
}

func TestGuardReleasesExactlyOnce(t *testing.T) {
	var released int
	g := newGuard(func() { released++ })

	g.Close()
	g.Close()
	g.Close()
	assert.Equal(t, 1, released)
}

func TestGuardZeroValueClose(t *testing.T) {
	var g guard
	assert.NotPanics(t, func() { g.Close() })
}

func TestWithResourceReleasesAfterDecode(t *testing.T) {
	var released int
	v, err := withResource(func() { released++ }, func() (int, error) {
		// The resource must still be held while decoding runs.
		assert.Equal(t, 0, released)
		return 42, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, released)
}

func TestWithResourceReleasesOnDecodeError(t *testing.T) {
	bad := errors.New("member documentation unavailable")
	var released int

	// A decoder that acquires a descriptor and then fails partway
	// still releases it exactly once, and the error comes through.
	_, err := withResource(func() { released++ }, func() (*struct{}, error) {
		return nil, bad
	})
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 1, released)
}

func TestWithResourceReleasesOnPanic(t *testing.T) {
	var released int
	assert.Panics(t, func() {
		_, _ = withResource(func() { released++ }, func() (int, error) {
			panic("decoder blew up")
		})
	})
	assert.Equal(t, 1, released)
}

func TestWithResourceBalancesNestedAcquires(t *testing.T) {
	var acquired, released int
	acquire := func() func() {
		acquired++
		return func() { released++ }
	}

	// An outer decode that performs a nested acquire on each element,
	// with one element failing, ends balanced.
	_, err := withResource(acquire(), func() ([]string, error) {
		var out []string
		for n := 0; n < 3; n++ {
			v, err := withResource(acquire(), func() (string, error) {
				if n == 1 {
					return "", errors.New("bad element")
				}
				return "element", nil
			})
			if err != nil {
				continue
			}
			out = append(out, v)
		}
		return out, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, acquired)
	assert.Equal(t, released, acquired)
}
