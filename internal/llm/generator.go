package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion indicates the model returned no usable text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

const systemMessage = "You are an expert communications professional. Follow the instructions in the request exactly and return only the finished document."

// sleepFunc is swappable so tests don't pay the retry backoff.
var sleepFunc = func(ms int) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Generator sends an assembled prompt to the model and returns the generated
// document. It retries once after a short backoff on a failed call and does
// not interpret model-specific errors.
type Generator struct {
	Client          Client
	Model           string
	MaxOutputTokens int
	Temperature     float32
}

// Generate performs the completion call for one assembled prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", errors.New("generator not configured")
	}
	temp := g.Temperature
	if temp == 0 {
		temp = 0.3
	}
	req := openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temp,
		MaxTokens:   g.MaxOutputTokens,
		N:           1,
	}

	resp, err := g.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		sleepFunc(100)
		resp, err = g.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("generation call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
