package shm

import (
	"bytes"
	"testing"
	"time"

	"github.com/evo-automation/evo/internal/wire"
)

func TestCreateWriterAndAttachReader(t *testing.T) {
	dir := t.TempDir()

	w, err := CreateWriter(dir, "test_seg", 128)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	defer w.Close()

	payload := []byte("hello evo")
	if err := w.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := Attach(dir, "test_seg")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer r.Close()

	buf := make([]byte, 128)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(buf[:len(payload)], payload) {
		t.Errorf("Read got %q, want %q", buf[:len(payload)], payload)
	}
	_ = n

	if w.ReaderCount() != 1 {
		t.Errorf("ReaderCount = %d, want 1", w.ReaderCount())
	}
}

func TestCreateWriterConflict(t *testing.T) {
	dir := t.TempDir()

	w1, err := CreateWriter(dir, "conflict_seg", 64)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	defer w1.Close()

	_, err = CreateWriter(dir, "conflict_seg", 64)
	if err != ErrWriterAlive {
		t.Errorf("second CreateWriter err = %v, want ErrWriterAlive", err)
	}
}

func TestAttachMissingSegment(t *testing.T) {
	dir := t.TempDir()
	_, err := Attach(dir, "does_not_exist")
	if err != wire.ErrSegmentNotFound {
		t.Errorf("Attach err = %v, want ErrSegmentNotFound", err)
	}
}

func TestWriteTooLargeForPayload(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateWriter(dir, "small_seg", 8)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	defer w.Close()

	err = w.Write(make([]byte, pageRound(HeaderSize+8)))
	if err != wire.ErrPayloadTooSmall {
		t.Errorf("Write err = %v, want ErrPayloadTooSmall", err)
	}
}

func TestReaderHasChanged(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateWriter(dir, "change_seg", 32)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	defer w.Close()

	r, err := Attach(dir, "change_seg")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer r.Close()

	buf := make([]byte, 32)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("initial Read failed: %v", err)
	}
	if r.HasChanged() {
		t.Error("HasChanged() = true before any new write")
	}

	if err := w.Write([]byte("changed")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !r.HasChanged() {
		t.Error("HasChanged() = false after a new write")
	}
}

func TestDiscoverAndCleanupOrphans(t *testing.T) {
	dir := t.TempDir()

	w, err := CreateWriter(dir, "orphan_seg", 16)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	infos, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Discover returned %d segments, want 1", len(infos))
	}
	if infos[0].WriterAlive {
		t.Error("WriterAlive = true after writer Close")
	}

	removed, err := CleanupOrphans(dir, 0)
	if err != nil {
		t.Fatalf("CleanupOrphans failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != "orphan_seg" {
		t.Errorf("CleanupOrphans removed %v, want [orphan_seg]", removed)
	}
}

func TestCleanupOrphansRespectsGrace(t *testing.T) {
	dir := t.TempDir()

	w, err := CreateWriter(dir, "fresh_seg", 16)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	removed, err := CleanupOrphans(dir, time.Hour)
	if err != nil {
		t.Fatalf("CleanupOrphans failed: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("CleanupOrphans removed %v under grace period, want none", removed)
	}
}
