package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeClient struct {
	calls     int
	failFirst bool
	reply     string
	err       error
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.failFirst && f.calls == 1 {
		return openai.ChatCompletionResponse{}, errors.New("transient")
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(int) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func TestGenerateReturnsTrimmedText(t *testing.T) {
	fc := &fakeClient{reply: "  The document.\n"}
	g := &Generator{Client: fc, Model: "gpt-4o-mini", MaxOutputTokens: 4000}
	out, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "The document." {
		t.Fatalf("got %q", out)
	}
	if fc.calls != 1 {
		t.Fatalf("expected a single call, got %d", fc.calls)
	}
}

func TestGenerateRetriesOnceOnTransientError(t *testing.T) {
	noSleep(t)
	fc := &fakeClient{failFirst: true, reply: "recovered"}
	g := &Generator{Client: fc, Model: "gpt-4o-mini"}
	out, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "recovered" || fc.calls != 2 {
		t.Fatalf("expected recovery on second call, got %q after %d calls", out, fc.calls)
	}
}

func TestGenerateFailsAfterRetry(t *testing.T) {
	noSleep(t)
	fc := &fakeClient{err: errors.New("down")}
	g := &Generator{Client: fc, Model: "gpt-4o-mini"}
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when both calls fail")
	}
	if fc.calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", fc.calls)
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	fc := &fakeClient{reply: "   "}
	g := &Generator{Client: fc, Model: "gpt-4o-mini"}
	if _, err := g.Generate(context.Background(), "prompt"); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("want ErrEmptyCompletion, got %v", err)
	}
}

func TestGenerateUnconfigured(t *testing.T) {
	g := &Generator{}
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("unconfigured generator must error")
	}
}
