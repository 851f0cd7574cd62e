package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"fiji-news/internal/usecase/narrate"
)

// espeakRate is the speaking rate in words per minute.
const espeakRate = 150

var _ narrate.OfflineEngine = (*Espeak)(nil)

// Espeak synthesizes WAV audio with a local espeak or espeak-ng binary.
type Espeak struct {
	command string
	voice   string
}

// NewEspeak creates an engine running command with the given voice.
func NewEspeak(command, voice string) *Espeak {
	if voice == "" {
		voice = "en"
	}
	return &Espeak{command: command, voice: voice}
}

// Name implements narrate.OfflineEngine.
func (e *Espeak) Name() string { return "espeak" }

// SynthesizeWAV writes the narration of input to path. The text is passed on
// stdin.
func (e *Espeak) SynthesizeWAV(ctx context.Context, input, path string) error {
	cmd := exec.CommandContext(ctx, e.command,
		"-s", strconv.Itoa(espeakRate),
		"-v", e.voice,
		"-w", path,
		"--stdin")
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", e.command, err, msg)
		}
		return fmt.Errorf("%s: %w", e.command, err)
	}
	return nil
}
