// Package openai wraps the completion provider behind a small interface the
// chat service can consume.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/nordiccodeworks/portfolio-backend/config"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
)

const (
	systemPromptSV = "Du är en chatbot för Nordic Code Works. " +
		"Vi bygger anpassade, högkvalitativa fullstack-webbapplikationer " +
		"till rimliga priser. Du svarar ENDAST på frågor som rör våra " +
		"tjänster, våra projekt och hur man kan starta ett projekt."
	systemPromptEN = "You are a chatbot for Nordic Code Works. " +
		"We build high-quality, custom full-stack web applications at " +
		"competitive prices. You ONLY answer questions related to our " +
		"services, our projects, and how to start a project."

	maxTokens   = 150
	temperature = 0.3
)

// Client calls the OpenAI chat completion API. A single attempt is made per
// request, bounded by the configured timeout.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient builds a client from the OpenAI config section.
func NewClient(cfg config.OpenAIConfig) *Client {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{
		api:   goopenai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// NewClientWithBaseURL points the client at an alternate endpoint. Used by
// tests and OpenAI-compatible providers.
func NewClientWithBaseURL(cfg config.OpenAIConfig, baseURL string) *Client {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{
		api:   goopenai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Complete sends the visitor query with a language-matched system prompt and
// returns the generated reply text. All provider failures are reported as
// domain.ErrUpstream.
func (c *Client) Complete(ctx context.Context, query, language string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt(language)},
			{Role: goopenai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrUpstream)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: blank completion", domain.ErrUpstream)
	}
	return text, nil
}

func systemPrompt(language string) string {
	if language == "sv" {
		return systemPromptSV
	}
	return systemPromptEN
}
