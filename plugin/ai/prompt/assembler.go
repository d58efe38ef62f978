package prompt

import (
	"strings"

	"github.com/hrygo/chatrelay/plugin/ai"
	"github.com/hrygo/chatrelay/plugin/ai/facts"
)

// BaseInstruction is the fixed part of every system instruction.
const BaseInstruction = "Você é um assistente de IA especialista. Responda de forma clara, objetiva e educada às perguntas do usuário."

// Instruction builds the system instruction for the known facts.
func Instruction(f facts.Facts) string {
	var sb strings.Builder
	if f.Name != "" {
		sb.WriteString(facts.NameMarker + " " + f.Name + ". ")
	}
	if f.Preferences != "" {
		sb.WriteString(facts.PreferencesMarker + " " + f.Preferences + ". ")
	}
	sb.WriteString(BaseInstruction)
	return sb.String()
}

// Assemble prepends the system instruction to the caller's messages, which
// keep their original order.
func Assemble(f facts.Facts, messages []ai.Message) []ai.Message {
	assembled := make([]ai.Message, 0, len(messages)+1)
	assembled = append(assembled, ai.SystemPrompt(Instruction(f)))
	assembled = append(assembled, messages...)
	return assembled
}
