package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chatrelay/store"
)

func TestConversationStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	first, err := ts.CreateConversation(ctx, &store.Conversation{
		UserID: "u-1",
		Messages: []store.ConversationMessage{
			{Role: store.RoleSystem, Content: "O nome do usuário é ana. "},
			{Role: store.RoleUser, Content: "oi"},
		},
		BotResponse: "Olá, ana! Como posso ajudar você hoje?",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := ts.CreateConversation(ctx, &store.Conversation{
		UserID:      "u-1",
		Messages:    []store.ConversationMessage{{Role: store.RoleUser, Content: "tudo bem?"}},
		BotResponse: "Tudo ótimo!",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = ts.CreateConversation(ctx, &store.Conversation{
		UserID:      "u-2",
		Messages:    []store.ConversationMessage{{Role: store.RoleUser, Content: "olá"}},
		BotResponse: "Olá!",
	})
	require.NoError(t, err)

	t.Run("GetByID", func(t *testing.T) {
		got, err := ts.GetConversation(ctx, &store.FindConversation{ID: &first.ID})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, first.Messages, got.Messages)
		assert.Equal(t, first.BotResponse, got.BotResponse)
	})

	t.Run("GetUnknownID", func(t *testing.T) {
		for _, id := range []string{"000000000000000000000000", "not-an-id", ""} {
			got, err := ts.GetConversation(ctx, &store.FindConversation{ID: &id})
			require.NoError(t, err)
			assert.Nil(t, got, "id %q", id)
		}
	})

	t.Run("LatestForUser", func(t *testing.T) {
		got, err := ts.GetLatestConversation(ctx, "u-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("LatestForUnknownUser", func(t *testing.T) {
		got, err := ts.GetLatestConversation(ctx, "u-none")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		userID := "u-1"
		list, err := ts.ListConversations(ctx, &store.FindConversation{UserID: &userID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})
}
