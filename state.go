package mapnav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pierrec/lz4"
)

// stateFileVersion is written into every saved view state.
const stateFileVersion = "1"

// stateEnvelope wraps the engine's opaque state in a saved file.
type stateEnvelope struct {
	Version string    `json:"version"`
	Saved   time.Time `json:"saved"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Engine  string    `json:"engine"`
}

// SaveStateFile writes the engine state to path as LZ4-compressed JSON.
// width and height record the surface the state was captured on.
func SaveStateFile(path string, engine Engine, width, height int) error {
	env := stateEnvelope{
		Version: stateFileVersion,
		Saved:   time.Now().UTC(),
		Width:   width,
		Height:  height,
		Engine:  engine.SerializeState(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("save state: marshal: %w", err)
	}
	compressed, err := compressLZ4(data)
	if err != nil {
		return fmt.Errorf("save state: compress: %w", err)
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadStateFile reads a file written by SaveStateFile and restores it into
// engine.
func LoadStateFile(path string, engine Engine) error {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	data, err := decompressLZ4(compressed)
	if err != nil {
		return fmt.Errorf("load state: decompress: %w", err)
	}
	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("load state: parse: %w", err)
	}
	if env.Version != stateFileVersion {
		return fmt.Errorf("load state: unsupported version %q", env.Version)
	}
	if err := engine.RestoreState(env.Engine); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return nil
}

func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
