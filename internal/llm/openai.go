package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI chat completion API. Credentials and model
// selection are external configuration; the client only executes prompts.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient constructs an OpenAI-backed client. The timeout is
// applied per call; a timed-out call surfaces as an ordinary error.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	var c *openai.Client
	if apiKey != "" {
		c = openai.NewClient(apiKey)
	}
	return &OpenAIClient{
		client:  c,
		model:   model,
		timeout: timeout,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice. An empty choice list yields an empty string, not an error; the
// caller treats both the same way.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:        params.MaxTokens,
		Temperature:      params.Temperature,
		FrequencyPenalty: params.FrequencyPenalty,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
