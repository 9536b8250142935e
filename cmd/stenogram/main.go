package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jwulff/stenogram/internal/cli"
	"github.com/jwulff/stenogram/internal/config"
	"github.com/jwulff/stenogram/internal/db"
	"github.com/jwulff/stenogram/internal/export"
	"github.com/jwulff/stenogram/internal/output"
	"github.com/jwulff/stenogram/internal/speech"
	"github.com/jwulff/stenogram/internal/summary"
	"github.com/jwulff/stenogram/internal/transcript"
)

func main() {
	if err := run(); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath = db.DefaultPath()
	}
	slots, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer slots.Close()

	deps := &cli.Dependencies{
		Config:     cfg,
		Store:      transcript.NewStore(slots),
		Summarizer: newSummarizer(cfg),
		Exporter:   export.Exporter{Dir: cfg.ExportDir},
		NewEngine:  func(simulate bool) speech.Engine { return newEngine(cfg, simulate) },
	}

	return cli.NewRootCmd(deps).Execute()
}

func newSummarizer(cfg *config.Config) summary.Summarizer {
	if cfg.OpenAIAPIKey != "" {
		return summary.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return &summary.Extractive{Delay: cfg.SummaryDelay}
}

func newEngine(cfg *config.Config, simulate bool) speech.Engine {
	if simulate || cfg.Engine == config.EngineScript {
		return simulatedEngine()
	}
	if cfg.Engine == config.EngineWhisper {
		return speech.NewWhisperEngine(speech.WhisperConfig{
			APIKey:   cfg.OpenAIAPIKey,
			Language: cfg.Locale,
		})
	}
	if len(cfg.RecognizerCommand) == 0 {
		// Nothing to exec; the session will report it as unauthorized.
		return speech.NewPipeEngine("")
	}
	return speech.NewPipeEngine(cfg.RecognizerCommand[0], cfg.RecognizerCommand[1:]...)
}

// simulatedEngine yields a fixed dictation so the app can be exercised
// without a microphone or recognizer. The final result ends the
// session on its own.
func simulatedEngine() speech.Engine {
	lines := []string{
		"Testing the",
		"Testing the voice",
		"Testing the voice stenographer.",
		"Testing the voice stenographer. It transcribes",
		"Testing the voice stenographer. It transcribes as you speak.",
	}
	script := make([]speech.Result, len(lines))
	for i, l := range lines {
		script[i] = speech.Result{Text: l, Final: i == len(lines)-1}
	}
	engine := speech.NewScriptEngine(script...)
	engine.Delay = 600 * time.Millisecond
	return engine
}
