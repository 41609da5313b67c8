// Command lesson-gen generates a numbered Python study lesson for one of
// the registered domains, validating it with the Python quality toolchain
// and retrying fixes before writing it out.
//
// Usage:
//
//	lesson-gen -domain dsa -topic "binary search"
//	lesson-gen -list-domains
//
// Credentials come from the environment (ANTHROPIC_API_KEY), optionally
// via a .env file in the working directory. LESSON_GEN_MODEL overrides the
// default model.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/react-agent/lessongen"
	"github.com/leofalp/react-agent/providers/observability"
	"github.com/leofalp/react-agent/providers/observability/slogobs"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// options holds the parsed command-line flags.
type options struct {
	listDomains bool
	domain      string
	topic       string
	out         string
	dryRun      bool
	force       bool
	maxRetries  int
}

// parseFlags parses args into options using an isolated FlagSet so tests
// can drive the CLI without touching the global flag state.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flags := flag.NewFlagSet("lesson-gen", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&opts.listDomains, "list-domains", false, "print available domains and exit")
	flags.StringVar(&opts.domain, "domain", "", "domain name (e.g. dsa, asyncio)")
	flags.StringVar(&opts.topic, "topic", "", "lesson topic to generate")
	flags.StringVar(&opts.out, "out", "", "explicit output file path")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print generated code without writing to disk")
	flags.BoolVar(&opts.force, "force", false, "overwrite an existing output file")
	flags.IntVar(&opts.maxRetries, "max-retries", lessongen.DefaultMaxIterations, "maximum validation retry attempts")

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	registry := lessongen.DefaultRegistry()

	if opts.listDomains {
		for _, name := range registry.Names() {
			domain, err := registry.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "  %s: %s (%s)\n", name, domain.Pedagogy, domain.ProjectType)
		}
		return nil
	}

	if opts.domain == "" || opts.topic == "" {
		return fmt.Errorf("-domain and -topic are required")
	}

	config, err := registry.Get(opts.domain)
	if err != nil {
		return err
	}

	targetDir, err := resolveTargetDir(opts, config)
	if err != nil {
		return err
	}

	pipelineOpts := []lessongen.Option{lessongen.WithRegistry(registry)}
	if model := os.Getenv("LESSON_GEN_MODEL"); model != "" {
		pipelineOpts = append(pipelineOpts, lessongen.WithModel(model))
	}

	pipeline, err := lessongen.New(pipelineOpts...)
	if err != nil {
		return err
	}

	ctx := observability.ContextWithObserver(context.Background(), slogobs.New())

	result, err := pipeline.Run(ctx, lessongen.Request{
		Topic:         opts.topic,
		Domain:        opts.domain,
		TargetDir:     targetDir,
		MaxIterations: opts.maxRetries,
		DryRun:        opts.dryRun,
		Force:         opts.force,
	})
	if err != nil {
		return err
	}

	switch {
	case result.Status == lessongen.StatusCommitted:
		fmt.Fprintf(stdout, "Lesson written to: %s\n", result.OutputPath)
	case result.Status == lessongen.StatusDryRun && result.RenderedCode != "":
		fmt.Fprintln(stdout, result.RenderedCode)
	default:
		fmt.Fprintf(stderr, "Generation failed (status=%s).\n", result.Status)
		if len(result.ValidationErrors) > 0 {
			fmt.Fprintln(stderr, "Validation errors:")
			for _, validationError := range result.ValidationErrors {
				fmt.Fprintf(stderr, "  - %s\n", validationError)
			}
		}
		return fmt.Errorf("lesson generation failed")
	}
	return nil
}

// resolveTargetDir picks the output directory: the parent of -out when
// given, otherwise the domain's lesson directory after checking the
// project exists on disk.
func resolveTargetDir(opts options, config lessongen.DomainConfig) (string, error) {
	if opts.out != "" {
		return filepath.Dir(opts.out), nil
	}
	if config.ProjectPath == "" {
		return "", fmt.Errorf("domain %q has no project path: use -out to specify an output location", opts.domain)
	}
	ok, message := lessongen.ValidateEnvironment(config)
	if !ok {
		return "", fmt.Errorf("%s", message)
	}
	return filepath.Join(config.ProjectPath, config.ResolvedLessonDir()), nil
}
