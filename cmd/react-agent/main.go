// Command react-agent runs the tool-calling agent once from the terminal.
//
// Usage:
//
//	react-agent [query...]
//
// The arguments are joined into the user message; with no arguments the
// default query "What is the weather in SF?" is used. The full conversation
// is printed as "role: content" lines when the run finishes.
//
// Credentials come from the environment (ANTHROPIC_API_KEY or
// OPENAI_API_KEY), optionally via a .env file in the working directory.
// REACT_AGENT_MODEL overrides the default model.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	reactagent "github.com/leofalp/react-agent"
	"github.com/leofalp/react-agent/providers/memory/inmemory"
	"github.com/leofalp/react-agent/providers/observability"
	"github.com/leofalp/react-agent/providers/observability/slogobs"
)

// DefaultQuery is the user message used when no argument is given.
const DefaultQuery = "What is the weather in SF?"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// queryFromArgs joins the CLI arguments into the user message, falling back
// to [DefaultQuery] when none are given.
func queryFromArgs(args []string) string {
	if len(args) == 0 {
		return DefaultQuery
	}
	return strings.Join(args, " ")
}

func run(args []string) error {
	query := queryFromArgs(args)

	history := inmemory.New()

	opts := []reactagent.Option{reactagent.WithMemory(history)}
	if model := os.Getenv("REACT_AGENT_MODEL"); model != "" {
		opts = append(opts, reactagent.WithModel(model))
	}

	agent, err := reactagent.New(opts...)
	if err != nil {
		return err
	}

	ctx := observability.ContextWithObserver(context.Background(), slogobs.New())

	if _, err := agent.Execute(ctx, query); err != nil {
		return err
	}

	messages, err := history.AllMessages(ctx)
	if err != nil {
		return err
	}
	for _, message := range messages {
		if message.Content == "" {
			continue
		}
		fmt.Printf("%s: %s\n", message.Role, message.Content)
	}

	return nil
}
