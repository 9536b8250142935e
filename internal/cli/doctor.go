package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/config"
	"github.com/jwulff/stenogram/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			f.CheckItem("Engine", true, deps.Config.Engine)

			switch deps.Config.Engine {
			case config.EnginePipe:
				if len(deps.Config.RecognizerCommand) == 0 {
					f.CheckItem("Recognizer command", false,
						"not set. Set STENOGRAM_RECOGNIZER or recognizer_command in config")
					ok = false
				} else if _, err := exec.LookPath(deps.Config.RecognizerCommand[0]); err != nil {
					f.CheckItem("Recognizer command", false,
						fmt.Sprintf("%s not found in PATH", deps.Config.RecognizerCommand[0]))
					ok = false
				} else {
					f.CheckItem("Recognizer command", true, deps.Config.RecognizerCommand[0])
				}

			case config.EngineWhisper:
				if _, err := exec.LookPath("ffmpeg"); err != nil {
					f.CheckItem("ffmpeg", false, "not found. Install with your package manager")
					ok = false
				} else {
					f.CheckItem("ffmpeg", true, "installed")
				}
				if deps.Config.OpenAIAPIKey == "" {
					f.CheckItem("OpenAI API key", false, "not set. Set OPENAI_API_KEY or add to config")
					ok = false
				} else {
					f.CheckItem("OpenAI API key", true, "configured")
				}

			case config.EngineScript:
				f.CheckItem("Recognizer", true, "scripted (no external dependencies)")
			}

			if deps.Config.OpenAIAPIKey != "" {
				f.CheckItem("Summaries", true, "OpenAI")
			} else {
				f.CheckItem("Summaries", true, "built-in extractive")
			}

			f.CheckItem("Export directory", true, deps.Config.ExportDir)

			if ok {
				f.Success("All prerequisites met. Ready to record!")
			} else {
				f.Warning("Some prerequisites are missing.")
			}
			return nil
		},
	}
}
