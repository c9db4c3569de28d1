package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAvailable_DetectsBinaryInstalledAfterConstruction(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "fakespeak")
	engine := &espeakEngine{binary: binary}

	if engine.Available() {
		t.Fatal("Expected engine to be unavailable before the binary exists")
	}

	if err := os.WriteFile(binary, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("Failed to write fake binary: %v", err)
	}

	if !engine.Available() {
		t.Fatal("Expected engine to become available once the binary exists")
	}
}

func TestSpeak_MissingBinaryReturnsErrUnavailable(t *testing.T) {
	engine := &espeakEngine{binary: filepath.Join(t.TempDir(), "no-such-binary")}

	err := engine.Speak(context.Background(), "hello", "en-US")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestSpeak_RunsBinaryWithLanguageFlag(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "fakespeak")
	marker := filepath.Join(dir, "args")

	script := "#!/bin/sh\necho \"$@\" > " + marker + "\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake binary: %v", err)
	}

	engine := &espeakEngine{binary: binary}
	if err := engine.Speak(context.Background(), "hello world", "en-US"); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	recorded, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("Fake binary did not record its arguments: %v", err)
	}
	if got, want := string(recorded), "-v en-US hello world\n"; got != want {
		t.Errorf("Fake binary ran with %q, want %q", got, want)
	}
}
