// Package llm adapts the OpenAI API to the domain Completer and
// Embedder interfaces.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"katalog/internal/domain/models"
)

// Client wraps the OpenAI API for chat completions and embeddings.
// It deliberately carries no retry logic: the assistant core treats
// both calls as single blocking operations, and retrying belongs to
// whoever owns the request deadline.
type Client struct {
	api          *openai.Client
	chatModel    string
	embedModel   openai.EmbeddingModel
	embedDim     int
	logger       *slog.Logger
}

// NewClient creates an OpenAI-backed client.
func NewClient(apiKey, chatModel, embedModel string, embedDim int, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &Client{
		api:        openai.NewClient(apiKey),
		chatModel:  chatModel,
		embedModel: openai.EmbeddingModel(embedModel),
		embedDim:   embedDim,
		logger:     logger,
	}, nil
}

// Complete sends a multi-turn message sequence and returns the raw
// response text.
func (c *Client) Complete(ctx context.Context, messages []models.Turn, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

// Embed returns a fixed-dimension vector for the text. The Dimensions
// parameter pins the output size so stored product vectors and query
// vectors always match the schema's vector column.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      c.embedModel,
		Dimensions: c.embedDim,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("create embedding: no embeddings returned")
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != c.embedDim {
		return nil, fmt.Errorf("create embedding: got %d dimensions, want %d", len(embedding), c.embedDim)
	}

	return embedding, nil
}

// Dimension returns the configured embedding width.
func (c *Client) Dimension() int {
	return c.embedDim
}
