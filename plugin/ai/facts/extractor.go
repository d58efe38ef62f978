// Package facts recognizes personal facts (name and preferences) a user states
// in chat and remembers them across conversations.
package facts

import "strings"

// Markers written into synthesized system instructions. The prompt assembler
// emits them and FromInstruction reads them back.
const (
	NameMarker        = "O nome do usuário é"
	PreferencesMarker = "O usuário gosta de"
)

// Trigger phrases recognized in lower-cased user messages.
const (
	NameTrigger        = "meu nome é"
	PreferencesTrigger = "eu gosto de"
)

// Facts holds what is known about a user. Empty fields are unknown.
type Facts struct {
	Name        string
	Preferences string
}

// Complete reports whether both facts are known.
func (f Facts) Complete() bool {
	return f.Name != "" && f.Preferences != ""
}

// Merge fills the unknown fields of f from other.
func (f Facts) Merge(other Facts) Facts {
	if f.Name == "" {
		f.Name = other.Name
	}
	if f.Preferences == "" {
		f.Preferences = other.Preferences
	}
	return f
}

// Extractor recognizes facts in message text.
type Extractor interface {
	// FromInstruction recovers facts from a previously synthesized system instruction.
	FromInstruction(content string) Facts
	// FromUserMessage recognizes facts stated in a user message.
	FromUserMessage(content string) Facts
}

// PhraseExtractor implements Extractor with fixed Portuguese phrases.
type PhraseExtractor struct{}

// NewPhraseExtractor creates the default extractor.
func NewPhraseExtractor() *PhraseExtractor {
	return &PhraseExtractor{}
}

// FromInstruction takes the text after the last marker occurrence up to the
// next period.
func (PhraseExtractor) FromInstruction(content string) Facts {
	return Facts{
		Name:        sentenceAfter(content, NameMarker),
		Preferences: sentenceAfter(content, PreferencesMarker),
	}
}

// FromUserMessage matches the lower-cased message. The name is the first word
// after the trigger; preferences are the whole remainder.
func (PhraseExtractor) FromUserMessage(content string) Facts {
	lower := strings.ToLower(content)

	var f Facts
	if rest, ok := afterLast(lower, NameTrigger); ok {
		if words := strings.Fields(rest); len(words) > 0 {
			f.Name = words[0]
		}
	}
	if rest, ok := afterLast(lower, PreferencesTrigger); ok {
		f.Preferences = strings.TrimSpace(rest)
	}
	return f
}

func sentenceAfter(content, marker string) string {
	rest, ok := afterLast(content, marker)
	if !ok {
		return ""
	}
	if i := strings.Index(rest, "."); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

// afterLast returns the text following the last occurrence of sep.
func afterLast(s, sep string) (string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", false
	}
	return s[i+len(sep):], true
}
