package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrUnavailable means no speech engine was found; the feature is disabled
// for that interaction and nothing else.
var ErrUnavailable = errors.New("speech engine unavailable")

// Engine plays spoken audio for a piece of text.
type Engine interface {
	// Available reports whether the engine can be used right now. Callers
	// check it before each Speak.
	Available() bool
	Speak(ctx context.Context, text, lang string) error
}

type espeakEngine struct {
	binary string
}

// NewEspeakEngine creates an Engine backed by the espeak binary. The binary
// is looked up on every availability check, so an engine installed after the
// process started is picked up without a restart.
func NewEspeakEngine() Engine {
	return &espeakEngine{binary: "espeak"}
}

func (e *espeakEngine) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Speak synthesizes text in the given language tag, blocking until playback
// finishes or ctx is cancelled.
func (e *espeakEngine) Speak(ctx context.Context, text, lang string) error {
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, path, "-v", lang, text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return nil
}
