package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"agentchat/pkg/config"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// Message roles accepted at the API boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one role-tagged entry in a model request, in the wire shape
// the chat completions endpoint expects.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces one model reply for an ordered message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

var ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

type OpenAIService struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

func NewOpenAIService() *OpenAIService {
	return &OpenAIService{
		apiKey: config.OpenAIAPIKey,
		model:  config.OpenAIModel,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: time.Duration(config.OpenAITimeoutSeconds) * time.Second},
	}
}

// Complete sends the message sequence as-is and returns the generated text.
// The orchestrator blocks until this returns or fails; there is no retry.
func (s *OpenAIService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[openai] OPENAI_API_KEY is not set")
		return "", ErrAPIKeyMissing
	}

	payload := struct {
		Model    string        `json:"model"`
		Messages []ChatMessage `json:"messages"`
	}{Model: s.model, Messages: messages}
	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[openai] POST %s model=%s messages=%d", s.apiURL, s.model, len(messages))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("malformed response: no choices")
	}
	reply := parsed.Choices[0].Message.Content
	if reply == "" {
		return "", errors.New("malformed response: empty reply content")
	}
	return reply, nil
}
