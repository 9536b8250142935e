package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// WhisperConfig configures the hosted-transcription engine.
type WhisperConfig struct {
	APIKey   string
	Model    string        // defaults to whisper-1
	Device   string        // capture device, defaults to the platform default input
	Chunk    time.Duration // capture chunk length, defaults to 5s
	Language string        // ISO 639-1 hint, empty for auto-detect
}

// WhisperEngine captures microphone audio in fixed chunks via ffmpeg
// and re-transcribes the accumulated recording with the OpenAI
// transcription API after each chunk, so every result replaces the
// whole hypothesis. The stream has no engine-side terminal: it runs
// until the context is cancelled or transcription fails.
type WhisperEngine struct {
	cfg    WhisperConfig
	client *openai.Client

	mu     sync.Mutex
	status AuthStatus
}

// NewWhisperEngine returns a hosted-transcription engine.
func NewWhisperEngine(cfg WhisperConfig) *WhisperEngine {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Chunk <= 0 {
		cfg.Chunk = 5 * time.Second
	}
	return &WhisperEngine{cfg: cfg, client: openai.NewClient(cfg.APIKey)}
}

// RequestAuthorization probes the capture and transcription
// prerequisites: no ffmpeg maps to denied, no API key to restricted.
func (e *WhisperEngine) RequestAuthorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case !ffmpegAvailable():
		e.status = AuthDenied
	case e.cfg.APIKey == "":
		e.status = AuthRestricted
	default:
		e.status = AuthAuthorized
	}
	return e.status
}

func (e *WhisperEngine) Authorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func (e *WhisperEngine) Start(ctx context.Context) (<-chan Result, error) {
	if !ffmpegAvailable() {
		return nil, fmt.Errorf("ffmpeg not found in PATH")
	}

	workDir, err := os.MkdirTemp("", "stenogram-capture-*")
	if err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}

	ch := make(chan Result)
	go func() {
		defer close(ch)
		defer os.RemoveAll(workDir)
		e.captureLoop(ctx, workDir, ch)
	}()

	return ch, nil
}

// captureLoop alternates fixed-length captures with re-transcription of
// everything recorded so far.
func (e *WhisperEngine) captureLoop(ctx context.Context, workDir string, ch chan<- Result) {
	full := filepath.Join(workDir, "session.wav")

	for chunk := 0; ; chunk++ {
		if ctx.Err() != nil {
			return
		}

		chunkPath := filepath.Join(workDir, fmt.Sprintf("chunk-%04d.wav", chunk))
		if err := e.captureChunk(ctx, chunkPath); err != nil {
			if ctx.Err() != nil {
				return
			}
			deliver(ctx, ch, Result{Err: fmt.Errorf("audio capture: %w", err)})
			return
		}

		if err := appendAudio(ctx, full, chunkPath); err != nil {
			deliver(ctx, ch, Result{Err: fmt.Errorf("assemble audio: %w", err)})
			return
		}

		text, err := e.transcribe(ctx, full)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			deliver(ctx, ch, Result{Err: fmt.Errorf("transcription: %w", err)})
			return
		}
		if !deliver(ctx, ch, Result{Text: text}) {
			return
		}
	}
}

// captureChunk records one chunk from the default input device.
func (e *WhisperEngine) captureChunk(ctx context.Context, outputPath string) error {
	format, device := captureInput(e.cfg.Device)
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", format,
		"-i", device,
		"-t", fmt.Sprintf("%.1f", e.cfg.Chunk.Seconds()),
		"-ac", "1",
		"-ar", "16000",
		"-y",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %w\n%s", err, out)
	}
	return nil
}

// appendAudio concatenates chunk onto full, creating full on the first
// chunk.
func appendAudio(ctx context.Context, full, chunk string) error {
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return os.Rename(chunk, full)
	}

	merged := full + ".next.wav"
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", full,
		"-i", chunk,
		"-filter_complex", "[0:a][1:a]concat=n=2:v=0:a=1[a]",
		"-map", "[a]",
		"-y",
		merged,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, out)
	}
	return os.Rename(merged, full)
}

func (e *WhisperEngine) transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    e.cfg.Model,
		FilePath: audioPath,
		Language: e.cfg.Language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// captureInput maps a device name to the ffmpeg input flags for the
// current platform.
func captureInput(device string) (format, input string) {
	switch runtime.GOOS {
	case "darwin":
		if device == "" {
			device = ":default"
		}
		return "avfoundation", device
	default:
		if device == "" {
			device = "default"
		}
		return "alsa", device
	}
}
