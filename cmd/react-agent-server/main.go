// Command react-agent-server runs the dev server, exposing the graphs
// declared in reactagent.json over HTTP (/ok, /info, /assistants/search,
// /threads/...).
//
// Configuration comes from the environment (REACT_AGENT_SERVER_HOST,
// REACT_AGENT_SERVER_PORT, REACT_AGENT_MANIFEST), optionally via a .env
// file. The server stops gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"

	reactagent "github.com/leofalp/react-agent"
	"github.com/leofalp/react-agent/lessongen"
	"github.com/leofalp/react-agent/providers/memory"
	"github.com/leofalp/react-agent/providers/observability"
	"github.com/leofalp/react-agent/providers/observability/slogobs"
	"github.com/leofalp/react-agent/server"
)

// defaultLessonDomain is the domain lesson_generator runs use unless
// LESSON_GEN_DOMAIN overrides it.
const defaultLessonDomain = "dsa"

// factories binds the graph identifiers a manifest may declare to their Go
// constructors, the way the original dev server resolved factory paths.
var factories = map[string]server.Factory{
	"agent": func(_ context.Context, history memory.Provider) (server.Runner, error) {
		return reactagent.New(reactagent.WithMemory(history))
	},
	"lesson_generator": func(_ context.Context, history memory.Provider) (server.Runner, error) {
		pipeline, err := lessongen.New()
		if err != nil {
			return nil, err
		}
		domain := os.Getenv("LESSON_GEN_DOMAIN")
		if domain == "" {
			domain = defaultLessonDomain
		}
		return pipeline.Assistant(domain, history), nil
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := server.Load()
	if err != nil {
		return err
	}

	manifest, err := server.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return err
	}
	if manifest.Env != "" {
		// Best effort: the manifest may point at an env file that only
		// exists in some environments.
		_ = godotenv.Load(manifest.Env)
	}

	observer := slogobs.New()
	devServer := server.New(cfg, server.WithObserver(observer))

	for graphID := range manifest.Graphs {
		factory, known := factories[graphID]
		if !known {
			observer.Warn("skipping unknown graph in manifest",
				observability.String("graph.id", graphID),
			)
			continue
		}
		devServer.RegisterGraph(graphID, factory)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return devServer.ListenAndServe(ctx)
}
