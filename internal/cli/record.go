package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/output"
	"github.com/jwulff/stenogram/internal/session"
	"github.com/jwulff/stenogram/internal/speech"
	"github.com/jwulff/stenogram/internal/transcript"
)

// NewRecordCmd records without the TUI: it runs a session until the
// engine finishes or the user interrupts, then saves the transcript.
func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var simulate bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record headlessly and save the transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(deps, simulate)
		},
	}

	cmd.Flags().BoolVar(&simulate, "simulate", false,
		"use a scripted recognizer instead of a live one")

	return cmd
}

func runHeadless(deps *Dependencies, simulate bool) error {
	f := output.NewFormatter(os.Stdout)

	sess := session.New(deps.NewEngine(simulate))
	if status := sess.RequestAuthorization(); status != speech.AuthAuthorized {
		return fmt.Errorf("speech recognition %s", status)
	}
	if err := sess.Start(); err != nil {
		return err
	}
	f.Info("Recording... press Ctrl-C to stop")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	var text string
	var elapsed time.Duration
loop:
	for {
		select {
		case u := <-sess.Updates():
			if u.Err != "" {
				return fmt.Errorf("recording failed: %s", u.Err)
			}
			if !u.Recording {
				text, elapsed = u.Text, u.Elapsed
				break loop
			}
		case <-sigc:
			text, elapsed = sess.Stop()
			break loop
		}
	}

	if strings.TrimSpace(text) == "" {
		f.Warning("Nothing transcribed; not saving")
		return nil
	}

	t := transcript.New("", text, elapsed)
	if err := deps.Store.Create(t); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	f.Success(fmt.Sprintf("Saved %q (%s)", t.Title, t.FormattedDuration()))
	fmt.Fprintf(os.Stdout, "\n%s\n", text)
	return nil
}
