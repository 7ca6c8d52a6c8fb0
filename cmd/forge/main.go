// Command forge runs the content-generation pipeline: it turns a raw
// product JSON record into an FAQ page, a landing page, and a competitor
// comparison page, with automated review and bounded self-correction.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/contentforge/content-forge/internal/config"
	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/llm/openai"
	"github.com/contentforge/content-forge/internal/runner"
)

var CLI struct {
	Input   string `arg:"" help:"Path to the raw product JSON file" type:"existingfile"`
	Tone    string `short:"t" help:"Tone of voice for all content (e.g. Witty, Luxury)" default:"Professional"`
	Out     string `short:"o" help:"Output directory for generated artifacts" default:"."`
	Offline bool   `help:"Use the deterministic offline provider (no API key needed)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	config.LoadEnv()
	kctx := kong.Parse(&CLI,
		kong.Name("forge"),
		kong.Description("Generate marketing artifacts from a product record."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var provider llm.Provider
	if CLI.Offline {
		provider = llm.Mock{}
		logger.Info("using offline provider")
	} else {
		client, err := openai.NewClientFromEnv()
		if err != nil {
			logger.Error("failed to initialize generation service client", "error", err)
			os.Exit(1)
		}
		provider = client
		logger.Info("generation service configured", "model", client.GetConfig().Model)
	}

	summary, err := runner.Run(context.Background(), provider, runner.Options{
		InputPath: CLI.Input,
		Tone:      CLI.Tone,
		OutDir:    CLI.Out,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("run %s finished: revisions=%d faq=%v landing=%v comparison=%v\n",
		summary.RunID, summary.RevisionCount,
		summary.FAQWritten, summary.LandingWritten, summary.CompWritten)
	if summary.LastError != "" {
		fmt.Printf("last error: %s\n", summary.LastError)
	}

	kctx.Exit(0)
}
