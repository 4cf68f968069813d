package prompt

import (
	"os"
	"strings"

	"agentchat/pkg/config"
	svc "agentchat/pkg/services"
)

// DefaultInstructions is the hard-coded fallback when no instructions file is
// readable. The backend, not the caller, owns agent behavior.
const DefaultInstructions = "You are a concise, practical assistant. Prioritize clarity, correctness, and actionable guidance."

// defaultPath is the instructions file bundled with the service.
const defaultPath = "agent_instructions.md"

func instructionsPath() string {
	if config.InstructionsPath != "" {
		return config.InstructionsPath
	}
	return defaultPath
}

// Instructions returns the current system instruction text. It reads the file
// fresh on every call so edits take effect without a restart, and always
// returns non-empty text.
func Instructions() string {
	content, err := os.ReadFile(instructionsPath())
	if err != nil {
		return DefaultInstructions
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return DefaultInstructions
	}
	return text
}

// BuildModelMessages returns a new sequence with the backend instructions as
// the leading system entry. Client-supplied system entries were already
// discarded upstream, so this is the only system content the model ever sees.
func BuildModelMessages(messages []svc.ChatMessage) []svc.ChatMessage {
	out := make([]svc.ChatMessage, 0, len(messages)+1)
	out = append(out, svc.ChatMessage{Role: svc.RoleSystem, Content: Instructions()})
	out = append(out, messages...)
	return out
}
