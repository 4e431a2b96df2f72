// Package council orchestrates multi-model deliberation: a panel of member
// models answers the same conversation in parallel, then a chairman model
// synthesizes the panel's answers into one response.
package council

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/martinemde/llmcouncil/llmrouter"
)

// ErrNoQuorum reports that every council member failed to answer.
var ErrNoQuorum = errors.New("no council member returned a response")

const synthesisSystemPrompt = "You are the chairman of a council of AI models. " +
	"Several council members have each answered the user's question independently. " +
	"Synthesize their answers into a single, accurate, well-organized response. " +
	"Where the members disagree, favor the position with the stronger reasoning. " +
	"Do not mention the council or the individual responses."

// MemberAnswer pairs a member model with its response from the parallel
// stage. Response is nil when that member failed.
type MemberAnswer struct {
	Model    string
	Response *llmrouter.Response
}

// Verdict is the outcome of one council round: every member's answer in
// member order, plus the chairman's synthesis. Synthesis is nil when the
// chairman failed; the member answers still stand on their own.
type Verdict struct {
	Prompt    string
	Answers   []MemberAnswer
	Synthesis *llmrouter.Response
}

// Council queries a fixed panel of member models and has a chairman model
// synthesize their answers.
type Council struct {
	registry *llmrouter.Registry
	members  []string
	chairman string
	timeout  time.Duration
}

// Option configures a Council.
type Option func(*Council)

// WithTimeout bounds each council query. Zero keeps the dispatcher default.
func WithTimeout(d time.Duration) Option {
	return func(c *Council) {
		c.timeout = d
	}
}

// New creates a council over the given registry.
func New(registry *llmrouter.Registry, members []string, chairman string, opts ...Option) *Council {
	c := &Council{
		registry: registry,
		members:  members,
		chairman: chairman,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one council round over the conversation history, whose last
// message is the prompt under deliberation. Individual member failures are
// tolerated; only a round with zero answers fails, with ErrNoQuorum.
func (c *Council) Run(ctx context.Context, history []llmrouter.Message) (*Verdict, error) {
	prompt := ""
	if n := len(history); n > 0 {
		prompt = history[n-1].Content
	}

	// Stage one: every member answers independently and concurrently. A
	// single deadline over the batch bounds each query, since all of them
	// start together.
	stageCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	results := c.registry.QueryModelsParallel(stageCtx, c.members, history)

	answers := make([]MemberAnswer, len(c.members))
	answered := 0
	for i, model := range c.members {
		answers[i] = MemberAnswer{Model: model, Response: results[model]}
		if results[model] != nil {
			answered++
		}
	}
	if answered == 0 {
		zap.L().Warn("council round failed, no member answered",
			zap.Strings("members", c.members))
		return nil, ErrNoQuorum
	}
	zap.L().Info("council stage one complete",
		zap.Int("answered", answered),
		zap.Int("members", len(c.members)))

	verdict := &Verdict{Prompt: prompt, Answers: answers}

	// Stage two: the chairman synthesizes. Losing the chairman degrades the
	// verdict rather than failing it; the member answers are already in hand.
	synthesis, err := c.registry.QueryModel(ctx, c.chairman, c.synthesisMessages(prompt, answers), c.timeout)
	if err != nil {
		zap.L().Warn("chairman synthesis failed",
			zap.String("chairman", c.chairman),
			zap.Error(err))
		return verdict, nil
	}
	verdict.Synthesis = synthesis
	return verdict, nil
}

// synthesisMessages builds the chairman's conversation: the original prompt
// and each member answer under an anonymous label, in member order.
func (c *Council) synthesisMessages(prompt string, answers []MemberAnswer) []llmrouter.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Original question:\n%s\n\nCouncil responses:\n\n", prompt)

	label := 'A'
	for _, a := range answers {
		if a.Response == nil {
			continue
		}
		fmt.Fprintf(&b, "Response %c:\n%s\n\n", label, a.Response.Content)
		label++
	}

	return []llmrouter.Message{
		llmrouter.SystemMessage(synthesisSystemPrompt),
		llmrouter.UserMessage(b.String()),
	}
}
