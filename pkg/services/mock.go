package services

import "context"

// Mock is a canned Completer for tests and local development. It records the
// sequences it receives so callers can assert on what would have been sent.
type Mock struct {
	Reply string
	Err   error

	Calls [][]ChatMessage
}

func (m *Mock) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	copied := append([]ChatMessage(nil), messages...)
	m.Calls = append(m.Calls, copied)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "ok", nil
}
