package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chatrelay/store"
)

func TestUserProfileStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	t.Run("GetMissingProfile", func(t *testing.T) {
		profile, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "nobody"})
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("UpsertCreatesProfile", func(t *testing.T) {
		name := "carlos"
		profile, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u-create", Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "u-create", profile.UserID)
		assert.Equal(t, "carlos", profile.Name)
		assert.Empty(t, profile.Preferences)

		got, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u-create"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "carlos", got.Name)
	})

	t.Run("UpsertKeepsOtherField", func(t *testing.T) {
		name := "ana"
		prefs := "futebol"
		_, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u-merge", Name: &name})
		require.NoError(t, err)
		_, err = ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u-merge", Preferences: &prefs})
		require.NoError(t, err)

		got, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u-merge"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ana", got.Name)
		assert.Equal(t, "futebol", got.Preferences)
	})

	t.Run("UpsertOverwrites", func(t *testing.T) {
		first, second := "maria", "joana"
		_, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u-overwrite", Name: &first})
		require.NoError(t, err)
		_, err = ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u-overwrite", Name: &second})
		require.NoError(t, err)

		got, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u-overwrite"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "joana", got.Name)
	})
}
