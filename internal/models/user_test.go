package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetPasswordMarksPending(t *testing.T) {
	u := &User{Username: "alice"}
	require.False(t, u.PendingHash())

	u.SetPassword("Passw0rd!")
	require.True(t, u.PendingHash())
	require.Empty(t, u.PasswordHash)
}

func TestHashPasswordRunsOnce(t *testing.T) {
	u := &User{Username: "alice"}
	u.SetPassword("Passw0rd!")

	require.NoError(t, u.HashPassword())
	require.False(t, u.PendingHash())
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "Passw0rd!", u.PasswordHash)

	// The hashed state must never be hashed again: a second call is
	// rejected and the stored hash is untouched.
	stored := u.PasswordHash
	require.ErrorIs(t, u.HashPassword(), ErrNoPendingPassword)
	require.Equal(t, stored, u.PasswordHash)

	require.True(t, u.CheckPassword("Passw0rd!"))
	require.False(t, u.CheckPassword("wrong"))
}

func TestPasswordChangeRehashesFreshSecretOnly(t *testing.T) {
	u := &User{Username: "alice"}
	u.SetPassword("first")
	require.NoError(t, u.HashPassword())
	old := u.PasswordHash

	u.SetPassword("second")
	require.True(t, u.PendingHash())
	require.NoError(t, u.HashPassword())

	require.NotEqual(t, old, u.PasswordHash)
	require.True(t, u.CheckPassword("second"))
	require.False(t, u.CheckPassword("first"))
}

func TestFavoritesHelpers(t *testing.T) {
	list := []string{}
	list = AddFavorite(list, "a")
	list = AddFavorite(list, "b")
	list = AddFavorite(list, "a")
	require.Equal(t, []string{"a", "b"}, list)
	require.True(t, IsFavorite(list, "a"))

	list = RemoveFavorite(list, "a")
	require.Equal(t, []string{"b"}, list)
	require.False(t, IsFavorite(list, "a"))
}
