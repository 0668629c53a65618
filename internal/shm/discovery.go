package shm

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evo-automation/evo/internal/wire"
)

// SegmentInfo summarizes one discovered segment without attaching to it.
type SegmentInfo struct {
	Stem        string
	WriterPID   uint32
	WriterAlive bool
	LastWriteAt time.Time
	ReaderCount uint32
}

// Discover lists every evo_* segment present under dir and reports writer
// liveness for each, probed via the sibling lock file (§4.1): if the
// non-blocking exclusive lock can be acquired, no writer currently holds
// it, so the recorded WriterPID is treated as dead.
func Discover(dir string) ([]SegmentInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []SegmentInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "evo_") || strings.HasSuffix(name, ".lock") {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(name, "evo_"), ".lock")

		info, err := probeSegment(dir, stem)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

func probeSegment(dir, stem string) (SegmentInfo, error) {
	dataF, err := os.OpenFile(filepath.Join(dir, wire.SegmentName(stem)), os.O_RDWR, 0)
	if err != nil {
		return SegmentInfo{}, err
	}
	defer dataF.Close()

	region, err := mapExisting(dataF)
	if err != nil {
		return SegmentInfo{}, err
	}
	defer unmapFile(region)

	h := headerPtr(region)
	info := SegmentInfo{
		Stem:        stem,
		WriterPID:   h.WriterPID,
		LastWriteAt: time.Unix(0, h.LastWriteNs.Load()),
		ReaderCount: h.ReaderCount.Load(),
	}

	lockF, err := os.OpenFile(filepath.Join(dir, wire.LockName(stem)), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return info, err
	}
	defer lockF.Close()

	acquired, err := flockExclusive(lockF)
	if err != nil {
		return info, err
	}
	if acquired {
		flockRelease(lockF)
		info.WriterAlive = false
	} else {
		info.WriterAlive = true
	}
	return info, nil
}

// CleanupOrphans removes segment and lock files whose writer is dead and
// whose last write is older than grace (§4.1 cleanup_orphans). It returns
// the stems it removed.
func CleanupOrphans(dir string, grace time.Duration) ([]string, error) {
	infos, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, info := range infos {
		if info.WriterAlive {
			continue
		}
		if time.Since(info.LastWriteAt) < grace {
			continue
		}
		_ = os.Remove(filepath.Join(dir, wire.SegmentName(info.Stem)))
		_ = os.Remove(filepath.Join(dir, wire.LockName(info.Stem)))
		removed = append(removed, info.Stem)
	}
	return removed, nil
}
