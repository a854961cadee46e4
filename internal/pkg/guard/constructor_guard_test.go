package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("guard_survives_copy_by_value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type claimCommand struct {
		jobID string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("claimCommand must be created via newClaimCommand")

	newClaimCommand := func(jobID string) (claimCommand, error) {
		if jobID == "" {
			return claimCommand{}, errors.New("job id is required")
		}
		return claimCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newClaimCommand("42")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errNotConstructed))

	var zero claimCommand
	assert.Equal(t, errNotConstructed, zero.guard.Validate(errNotConstructed))

	_, err = newClaimCommand("")
	require.Error(t, err)
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}
