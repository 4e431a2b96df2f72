// Command llmcouncil runs a council of LLMs from the terminal: it fans a
// prompt out to the configured member models, has the chairman model
// synthesize their answers, and stores the conversation on disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/martinemde/llmcouncil/config"
	"github.com/martinemde/llmcouncil/convstore"
	"github.com/martinemde/llmcouncil/council"
	"github.com/martinemde/llmcouncil/llmrouter"
	"github.com/martinemde/llmcouncil/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// config.Load pulls .env into the process environment, which logger.Init
	// reads for ENV and LOG_LEVEL.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "ask":
		err = runAsk(ctx, cfg, os.Args[2:])
	case "continue":
		err = runContinue(ctx, cfg, os.Args[2:])
	case "list":
		err = runList(cfg)
	case "providers":
		err = runProviders(cfg)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: llmcouncil <command> [args]

Commands:
  ask <prompt>            run one council round and store the conversation
  continue <id> <prompt>  append a round to a stored conversation
  list                    list stored conversations
  providers               show the active provider adapters
`)
}

func runAsk(ctx context.Context, cfg *config.Config, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("usage: llmcouncil ask <prompt>")
	}

	store, err := convstore.Open(cfg.DataDir)
	if err != nil {
		return err
	}

	verdict, err := runCouncil(ctx, cfg, []llmrouter.Message{llmrouter.UserMessage(prompt)})
	if err != nil {
		return err
	}
	printVerdict(verdict)

	conv := store.Create(title(prompt))
	conv.Append(turnFromVerdict(verdict))
	if err := store.Save(conv); err != nil {
		return err
	}
	fmt.Printf("\nsaved conversation %s\n", conv.ID)
	return nil
}

func runContinue(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: llmcouncil continue <id> <prompt>")
	}
	id := args[0]
	prompt := strings.TrimSpace(strings.Join(args[1:], " "))
	if prompt == "" {
		return fmt.Errorf("usage: llmcouncil continue <id> <prompt>")
	}

	store, err := convstore.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	conv, err := store.Load(id)
	if err != nil {
		return err
	}

	history := append(historyMessages(conv), llmrouter.UserMessage(prompt))
	verdict, err := runCouncil(ctx, cfg, history)
	if err != nil {
		return err
	}
	printVerdict(verdict)

	conv.Append(turnFromVerdict(verdict))
	if err := store.Save(conv); err != nil {
		return err
	}
	fmt.Printf("\nupdated conversation %s\n", conv.ID)
	return nil
}

func runList(cfg *config.Config) error {
	store, err := convstore.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	summaries, err := store.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no stored conversations")
		return nil
	}
	for _, s := range summaries {
		fmt.Printf("%s  %2d turns  %s  %s\n",
			s.ID, s.Turns, s.UpdatedAt.Format("2006-01-02 15:04"), s.Title)
	}
	return nil
}

func runProviders(cfg *config.Config) error {
	reg := llmrouter.NewRegistryFromConfig(cfg)
	providers := reg.Providers()
	if len(providers) == 0 {
		fmt.Println("no providers configured; set OPENROUTER_API_KEY, DEEPSEEK_API_KEY, ZHIPU_API_KEY, or MOONSHOT_API_KEY")
		return nil
	}
	for _, name := range providers {
		fmt.Println(name)
	}
	return nil
}

func runCouncil(ctx context.Context, cfg *config.Config, history []llmrouter.Message) (*council.Verdict, error) {
	reg := llmrouter.NewRegistryFromConfig(cfg)
	c := council.New(reg, cfg.CouncilModels, cfg.ChairmanModel,
		council.WithTimeout(cfg.QueryTimeout))
	return c.Run(ctx, history)
}

func printVerdict(v *council.Verdict) {
	for _, a := range v.Answers {
		fmt.Printf("=== %s ===\n", a.Model)
		if a.Response == nil {
			fmt.Print("(no response)\n\n")
			continue
		}
		fmt.Printf("%s\n\n", a.Response.Content)
	}
	fmt.Println("=== chairman synthesis ===")
	if v.Synthesis == nil {
		fmt.Println("(no response)")
	} else {
		fmt.Println(v.Synthesis.Content)
	}
}

// historyMessages replays a stored conversation as alternating user and
// assistant messages, using the chairman synthesis as the assistant reply
// (or the first member answer when a round had no synthesis).
func historyMessages(conv *convstore.Conversation) []llmrouter.Message {
	var history []llmrouter.Message
	for _, turn := range conv.Turns {
		history = append(history, llmrouter.UserMessage(turn.Prompt))
		reply := turn.Synthesis
		if reply == "" {
			for _, a := range turn.Answers {
				if !a.Failed && a.Content != "" {
					reply = a.Content
					break
				}
			}
		}
		if reply != "" {
			history = append(history, llmrouter.AssistantMessage(reply))
		}
	}
	return history
}

func turnFromVerdict(v *council.Verdict) convstore.Turn {
	turn := convstore.Turn{
		Prompt: v.Prompt,
		At:     time.Now().UTC(),
	}
	for _, a := range v.Answers {
		ma := convstore.MemberAnswer{Model: a.Model}
		if a.Response == nil {
			ma.Failed = true
		} else {
			ma.Content = a.Response.Content
			ma.Reasoning = a.Response.ReasoningDetails
		}
		turn.Answers = append(turn.Answers, ma)
	}
	if v.Synthesis != nil {
		turn.Synthesis = v.Synthesis.Content
	}
	zap.L().Debug("recorded council turn", zap.Int("answers", len(turn.Answers)))
	return turn
}

func title(prompt string) string {
	const max = 64
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max])
}
