package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Facts
	}{
		{
			name:    "name is first word after trigger",
			content: "Oi, meu nome é Carlos e moro em SP",
			want:    Facts{Name: "carlos"},
		},
		{
			name:    "preferences are the whole remainder",
			content: "Eu gosto de futebol e música",
			want:    Facts{Preferences: "futebol e música"},
		},
		{
			name:    "both in one message",
			content: "meu nome é Ana. eu gosto de ler",
			want:    Facts{Name: "ana.", Preferences: "ler"},
		},
		{
			name:    "last occurrence wins",
			content: "meu nome é joão, digo, meu nome é Pedro",
			want:    Facts{Name: "pedro"},
		},
		{
			name:    "trigger at the end yields nothing",
			content: "meu nome é   ",
			want:    Facts{},
		},
		{
			name:    "empty preferences yield nothing",
			content: "eu gosto de",
			want:    Facts{},
		},
		{
			name:    "no trigger",
			content: "Qual é a capital da França?",
			want:    Facts{},
		},
	}

	extractor := NewPhraseExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.FromUserMessage(tt.content))
		})
	}
}

func TestFromInstruction(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Facts
	}{
		{
			name:    "both markers",
			content: "O nome do usuário é carlos. O usuário gosta de futebol. Você é um assistente de IA especialista.",
			want:    Facts{Name: "carlos", Preferences: "futebol"},
		},
		{
			name:    "name only",
			content: "O nome do usuário é ana. Você é um assistente.",
			want:    Facts{Name: "ana"},
		},
		{
			name:    "marker without period takes the rest",
			content: "O usuário gosta de xadrez",
			want:    Facts{Preferences: "xadrez"},
		},
		{
			name:    "markers are case sensitive",
			content: "o nome do usuário é bia.",
			want:    Facts{},
		},
	}

	extractor := NewPhraseExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.FromInstruction(tt.content))
		})
	}
}

func TestFactsMerge(t *testing.T) {
	merged := Facts{Name: "ana"}.Merge(Facts{Name: "bia", Preferences: "ler"})
	assert.Equal(t, Facts{Name: "ana", Preferences: "ler"}, merged)
	assert.True(t, merged.Complete())
	assert.False(t, Facts{Name: "ana"}.Complete())
}
