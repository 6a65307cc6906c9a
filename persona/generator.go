package persona

import (
	"context"
	"fmt"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/hyperbolic"
)

// Token budgets per output kind. Posts are short by construction; direct
// messages get room to answer at length.
const (
	postMaxTokens        = 100
	replyMaxTokens       = 200
	directReplyMaxTokens = 500
)

// Generator produces the agent's writing by rendering character prompts
// and running them through hosted inference.
type Generator struct {
	Character *Character
	Model     string

	// GPUID pins inference to an already-rented instance. Empty lets the
	// marketplace place the call.
	GPUID string

	client *hyperbolic.Client
}

var _ agent.ContentProvider = (*Generator)(nil)

func NewGenerator(client *hyperbolic.Client, character *Character, model string) (*Generator, error) {
	if client == nil {
		return nil, fmt.Errorf("hyperbolic client is required")
	}
	if character == nil {
		character = Default()
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &Generator{
		Character: character,
		Model:     model,
		client:    client,
	}, nil
}

func (g *Generator) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	text, err := g.client.Generate(ctx, hyperbolic.GenerateRequest{
		Prompt:    prompt,
		Model:     g.Model,
		GPUID:     g.GPUID,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	return text, nil
}

func (g *Generator) GeneratePost(ctx context.Context) (string, error) {
	return g.generate(ctx, g.Character.PostPrompt(), postMaxTokens)
}

func (g *Generator) GenerateReply(ctx context.Context, m agent.Mention) (string, error) {
	return g.generate(ctx, g.Character.ReplyPrompt(m.Text), replyMaxTokens)
}

func (g *Generator) GenerateDirectReply(ctx context.Context, ev agent.DMEvent) (string, error) {
	return g.generate(ctx, g.Character.DirectReplyPrompt(ev.Text), directReplyMaxTokens)
}
