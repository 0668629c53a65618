package typed

import (
	"testing"

	"github.com/evo-automation/evo/internal/wire"
)

type samplePayload struct {
	A uint64
	B int32
	C [4]byte
}

type otherPayload struct {
	X float64
}

func TestWriterReaderRoundTrip(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter[samplePayload](dir, "sample_seg", wire.ModuleCU, wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()

	in := samplePayload{A: 42, B: -7, C: [4]byte{1, 2, 3, 4}}
	if err := w.Write(&in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := NewReader[samplePayload](dir, "sample_seg", wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var out samplePayload
	if err := r.Read(&out); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if out != in {
		t.Errorf("Read got %+v, want %+v", out, in)
	}
	if w.Heartbeat() != 1 {
		t.Errorf("Heartbeat() = %d, want 1", w.Heartbeat())
	}
}

func TestReaderRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter[samplePayload](dir, "mismatch_seg", wire.ModuleCU, wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()
	if err := w.Write(&samplePayload{A: 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := NewReader[otherPayload](dir, "mismatch_seg", wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var out otherPayload
	if err := r.Read(&out); err != wire.ErrVersionMismatch {
		t.Errorf("Read err = %v, want ErrVersionMismatch", err)
	}
}

func TestReaderDetectsStaleWriter(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter[samplePayload](dir, "stale_seg", wire.ModuleCU, wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()
	if err := w.Write(&samplePayload{A: 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := NewReader[samplePayload](dir, "stale_seg", wire.ModuleHAL, WithStaleThreshold(2))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var out samplePayload
	if err := r.Read(&out); err != nil {
		t.Fatalf("first Read failed: %v", err)
	}
	if err := r.Read(&out); err != nil {
		t.Fatalf("second Read failed: %v", err)
	}
	if err := r.Read(&out); err != wire.ErrStale {
		t.Errorf("third Read err = %v, want ErrStale", err)
	}
}

func TestReaderRejectsDestinationMismatch(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter[samplePayload](dir, "dest_seg", wire.ModuleCU, wire.ModuleHAL)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()
	if err := w.Write(&samplePayload{A: 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := NewReader[samplePayload](dir, "dest_seg", wire.ModuleRecipeExecutor)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	var out samplePayload
	if err := r.Read(&out); err != wire.ErrDestinationMismatch {
		t.Errorf("Read err = %v, want ErrDestinationMismatch", err)
	}
}
