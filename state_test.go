package mapnav

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLZ4RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte(`{"x":1,"y":2,"zoom":3}`), 100)
	compressed, err := compressLZ4(data)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if len(compressed) >= len(data) {
		t.Errorf("compressed %d bytes into %d", len(data), len(compressed))
	}
	out, err := decompressLZ4(compressed)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("round trip changed the data")
	}
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.state")
	src := newTestMapEngine()
	src.X, src.Y, src.Zoom = 320, -64, -2
	if err := SaveStateFile(path, src, 800, 600); err != nil {
		t.Fatalf("SaveStateFile: %v", err)
	}

	dst := newTestMapEngine()
	if err := LoadStateFile(path, dst); err != nil {
		t.Fatalf("LoadStateFile: %v", err)
	}
	if dst.X != 320 || dst.Y != -64 || dst.Zoom != -2 {
		t.Errorf("restored center=(%v, %v) zoom=%d", dst.X, dst.Y, dst.Zoom)
	}
}

func TestLoadStateFileErrors(t *testing.T) {
	dir := t.TempDir()
	engine := newTestMapEngine()

	if err := LoadStateFile(filepath.Join(dir, "missing"), engine); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte("not lz4 at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadStateFile(garbage, engine); err == nil {
		t.Error("expected error for a file that is not LZ4")
	}

	versioned := filepath.Join(dir, "future")
	data, err := compressLZ4([]byte(`{"version":"99","engine":"{}"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(versioned, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadStateFile(versioned, engine); err == nil {
		t.Error("expected error for unsupported version")
	}
}
