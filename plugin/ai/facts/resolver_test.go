package facts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chatrelay/store"
	teststore "github.com/hrygo/chatrelay/store/test"
)

func userMsg(content string) Message {
	return Message{Role: store.RoleUser, Content: content}
}

func TestResolve_NothingKnown(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)

	got := NewResolver(ts, nil).Resolve(ctx, "u1", []Message{userMsg("Qual é a capital da França?")})
	assert.Equal(t, Facts{}, got)

	profile, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u1"})
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestResolve_StatedFactsArePersisted(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)
	resolver := NewResolver(ts, nil)

	got := resolver.Resolve(ctx, "u1", []Message{
		userMsg("meu nome é Carlos"),
		{Role: store.RoleAssistant, Content: "meu nome é robô"},
		userMsg("eu gosto de futebol"),
	})
	assert.Equal(t, Facts{Name: "carlos", Preferences: "futebol"}, got)

	profile, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "carlos", profile.Name)
	assert.Equal(t, "futebol", profile.Preferences)

	// A later turn without statements recovers the stored facts.
	got = resolver.Resolve(ctx, "u1", []Message{userMsg("oi")})
	assert.Equal(t, Facts{Name: "carlos", Preferences: "futebol"}, got)
}

func TestResolve_LaterStatementOverrides(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)
	name := "ana"
	_, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u1", Name: &name})
	require.NoError(t, err)

	got := NewResolver(ts, nil).Resolve(ctx, "u1", []Message{
		userMsg("meu nome é bia"),
		userMsg("na verdade meu nome é carla"),
	})
	assert.Equal(t, "carla", got.Name)

	profile, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "carla", profile.Name)
}

func TestResolve_RecoversFromLatestConversation(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)

	_, err := ts.CreateConversation(ctx, &store.Conversation{
		UserID: "u1",
		Messages: []store.ConversationMessage{
			{Role: store.RoleSystem, Content: "O nome do usuário é antigo. Você é um assistente."},
		},
		BotResponse: "ok",
	})
	require.NoError(t, err)
	_, err = ts.CreateConversation(ctx, &store.Conversation{
		UserID: "u1",
		Messages: []store.ConversationMessage{
			{Role: store.RoleSystem, Content: "O nome do usuário é dora. O usuário gosta de xadrez. Você é um assistente."},
			{Role: store.RoleUser, Content: "O nome do usuário é falso."},
		},
		BotResponse: "ok",
	})
	require.NoError(t, err)

	got := NewResolver(ts, nil).Resolve(ctx, "u1", []Message{userMsg("tudo bem?")})
	assert.Equal(t, Facts{Name: "dora", Preferences: "xadrez"}, got)
}

func TestResolve_ProfileTakesPrecedenceOverHistory(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)

	name := "eva"
	_, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{UserID: "u1", Name: &name})
	require.NoError(t, err)
	_, err = ts.CreateConversation(ctx, &store.Conversation{
		UserID: "u1",
		Messages: []store.ConversationMessage{
			{Role: store.RoleSystem, Content: "O nome do usuário é fabio. O usuário gosta de cinema. Você é um assistente."},
		},
	})
	require.NoError(t, err)

	got := NewResolver(ts, nil).Resolve(ctx, "u1", []Message{userMsg("tudo bem?")})
	assert.Equal(t, Facts{Name: "eva", Preferences: "cinema"}, got)
}

func TestResolve_StoreFailureDegrades(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewTestingStore(ctx, t)
	require.NoError(t, ts.Close())

	got := NewResolver(ts, nil).Resolve(ctx, "u1", []Message{userMsg("meu nome é Gil")})
	assert.Equal(t, Facts{Name: "gil"}, got)
}

type failingUpsertStore struct {
	Store
	upserts int
}

func (s *failingUpsertStore) UpsertUserProfile(context.Context, *store.UpsertUserProfile) (*store.UserProfile, error) {
	s.upserts++
	return nil, errors.New("disk full")
}

func TestResolve_UpsertFailureKeepsStatedFact(t *testing.T) {
	ctx := context.Background()
	st := &failingUpsertStore{Store: teststore.NewTestingStore(ctx, t)}

	got := NewResolver(st, nil).Resolve(ctx, "u1", []Message{userMsg("meu nome é Hugo e eu gosto de surf")})
	assert.Equal(t, Facts{Name: "hugo", Preferences: "surf"}, got)
	assert.Equal(t, 2, st.upserts)
}
