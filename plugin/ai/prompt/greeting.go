// Package prompt builds what is sent to, or instead of, the completion model.
package prompt

import (
	"fmt"
	"strings"
)

// greetings are matched as substrings of the lower-cased last message.
var greetings = []string{"oi", "olá", "ola", "bom dia", "boa tarde", "boa noite"}

const greetingTemplate = "Olá, %s! Como posso ajudar você hoje?"

// Greeting returns the personalized greeting reply when the last message
// greets and the user's name is known.
func Greeting(lastContent, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if !IsGreeting(lastContent) {
		return "", false
	}
	return fmt.Sprintf(greetingTemplate, name), true
}

// IsGreeting reports whether content contains a greeting. Matching is by
// substring, so "oi" also matches inside words like "noite" or "oito".
func IsGreeting(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	for _, g := range greetings {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}
