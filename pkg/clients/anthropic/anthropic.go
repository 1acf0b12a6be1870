package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	model          = "claude-3-haiku-20240307"
	maxTokens      = 512
)

const systemPrompt = `You translate chat messages from a player of a chicken farm game into game commands.

Supported commands:
/name <player name>
/start
/end
/sound
/buy chicken <egg|meat|fighting|bantam>
/buy food <grass|food-good|food-great|food-premium|growth-potion|egg-potion>
/sellfood <food id>
/feed <chicken number> <food id>
/collect <chicken number>
/sell
/reset
/status
/help
/leaderboard

Chicken numbers are 1-based positions in the flock.

Reply with ONLY a JSON object: {"command": "<one command or empty string>", "reply": "<short message to the player>"}.
Use an empty command when the message does not map to exactly one command, and explain why in reply.
Answer in the language of the player.`

// Client translates free text into game commands.
type Client interface {
	TranslateToCommand(ctx context.Context, history []Message, input string) (Translation, error)
}

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Translation is the model's answer. Command is empty when nothing matched.
type Translation struct {
	Command string `json:"command"`
	Reply   string `json:"reply"`
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a client against another API host.
func NewClientWithBaseURL(apiKey, baseURL string) Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *anthropicClient) TranslateToCommand(ctx context.Context, history []Message, input string) (Translation, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: input})
	// Prefill the assistant turn to force a JSON answer.
	messages = append(messages, Message{Role: "assistant", Content: "{"})

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(messageRequest{
			Model:     model,
			MaxTokens: maxTokens,
			System:    systemPrompt,
			Messages:  messages,
		}).
		SetResult(&respBody).
		Post("/v1/messages")
	if err != nil {
		return Translation{}, fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return Translation{}, fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return Translation{}, fmt.Errorf("empty response from ai")
	}

	return parseTranslation("{" + respBody.Content[0].Text)
}

func parseTranslation(text string) (Translation, error) {
	text = strings.TrimSpace(text)
	// The model occasionally wraps JSON in a code fence.
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var out Translation
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Translation{}, fmt.Errorf("failed to unmarshal ai response: %w", err)
	}

	out.Command = strings.TrimSpace(out.Command)
	if out.Command != "" && !strings.HasPrefix(out.Command, "/") {
		out.Command = "/" + out.Command
	}
	return out, nil
}
