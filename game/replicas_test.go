package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplicas(t *testing.T) {
	t.Run("replicas share one topology", func(t *testing.T) {
		r, err := NewReplicas(5, 3)
		require.NoError(t, err)
		require.Equal(t, 3, r.Len())
		require.Same(t, r.At(0).Topology(), r.At(2).Topology())
		require.NotSame(t, r.At(0), r.At(1))
	})

	t.Run("at least one replica", func(t *testing.T) {
		r, err := NewReplicas(3, 0)
		require.NoError(t, err)
		require.Equal(t, 1, r.Len())
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewReplicas(2, 2)
		require.ErrorIs(t, err, ErrBoardSize)
	})

	t.Run("moves are mirrored on every replica", func(t *testing.T) {
		r, _ := NewReplicas(4, 4)
		require.NoError(t, r.Place(5, PlayerA))
		require.NoError(t, r.Place(6, PlayerB))
		r.Remove(5)

		for i := 0; i < r.Len(); i++ {
			require.Equal(t, Empty, r.At(i).Owner(5))
			require.Equal(t, PlayerB, r.At(i).Owner(6))
		}
		require.NoError(t, r.Verify())
	})

	t.Run("rejected move leaves replicas untouched", func(t *testing.T) {
		r, _ := NewReplicas(4, 2)
		require.NoError(t, r.Place(5, PlayerA))

		require.ErrorIs(t, r.Place(5, PlayerB), ErrOccupied)
		require.Equal(t, PlayerA, r.At(1).Owner(5))
		require.NoError(t, r.Verify())
	})

	t.Run("diverged replica is rolled back and reported", func(t *testing.T) {
		r, _ := NewReplicas(4, 3)
		require.NoError(t, r.At(2).Place(7, PlayerB)) // Bypass the mirror

		err := r.Place(7, PlayerA)

		require.ErrorIs(t, err, ErrReplicaDivergence)
		require.Equal(t, Empty, r.At(0).Owner(7), "Earlier replicas should be rolled back")
		require.Equal(t, Empty, r.At(1).Owner(7))
		require.ErrorIs(t, r.Verify(), ErrReplicaDivergence)
	})
}
