package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/stenogram/internal/app"
	"github.com/jwulff/stenogram/internal/config"
	"github.com/jwulff/stenogram/internal/export"
	"github.com/jwulff/stenogram/internal/session"
	"github.com/jwulff/stenogram/internal/speech"
	"github.com/jwulff/stenogram/internal/summary"
	"github.com/jwulff/stenogram/internal/transcript"
	"github.com/jwulff/stenogram/internal/version"
)

type Dependencies struct {
	Config     *config.Config
	Store      *transcript.Store
	Summarizer summary.Summarizer
	Exporter   export.Exporter

	// NewEngine builds the speech backend. simulate forces the
	// scripted engine regardless of configuration.
	NewEngine func(simulate bool) speech.Engine
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var simulate bool

	rootCmd := &cobra.Command{
		Use:   "stenogram",
		Short: "Record your voice, transcribe it live, and keep the transcripts",
		Long: "A terminal voice stenographer: records speech, shows the live " +
			"transcription, and stores transcripts with summaries and exports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(deps, simulate)
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().BoolVar(&simulate, "simulate", false,
		"use a scripted recognizer instead of a live one")

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

func runTUI(deps *Dependencies, simulate bool) error {
	sess := session.New(deps.NewEngine(simulate))
	sess.RequestAuthorization()

	m := app.New(deps.Store, sess, deps.Summarizer, deps.Exporter)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// resolve finds a transcript by 1-based list position or ID prefix.
func resolve(store *transcript.Store, arg string) (transcript.Transcript, error) {
	all := store.All()

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(all) {
			return transcript.Transcript{}, fmt.Errorf("no transcript at position %d (have %d)", n, len(all))
		}
		return all[n-1], nil
	}

	var matches []transcript.Transcript
	for _, t := range all {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return transcript.Transcript{}, fmt.Errorf("no transcript matches %q", arg)
	default:
		return transcript.Transcript{}, fmt.Errorf("%q matches %d transcripts", arg, len(matches))
	}
}
