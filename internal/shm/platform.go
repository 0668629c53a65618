package shm

import (
	"os"

	"golang.org/x/sys/unix"
)

// pageRound rounds n up to the next multiple of the platform page size, so
// every segment's mmap length is page-aligned regardless of payload size.
func pageRound(n int) int {
	page := unix.Getpagesize()
	if n%page == 0 {
		return n
	}
	return (n/page + 1) * page
}

// mapFile truncates f to size and maps it PROT_READ|PROT_WRITE/MAP_SHARED,
// returning the mapped region. The caller owns unmapping it via unmapFile.
func mapFile(f *os.File, size int) ([]byte, error) {
	if err := f.Truncate(int64(size)); err != nil {
		return nil, err
	}
	region, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return region, nil
}

// mapExisting maps an already-sized file without truncating it, used when
// attaching as a reader to a segment created by another process.
func mapExisting(f *os.File) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := int(info.Size())
	if size < HeaderSize {
		return nil, ErrShortSegment
	}
	region, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return region, nil
}

func unmapFile(region []byte) error {
	if region == nil {
		return nil
	}
	return unix.Munmap(region)
}

// flockExclusive attempts a non-blocking exclusive advisory lock on f. It
// returns (true, nil) if acquired, (false, nil) if another process holds it
// (EWOULDBLOCK), or (false, err) on any other failure.
func flockExclusive(f *os.File) (bool, error) {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if err == unix.EWOULDBLOCK {
		return false, nil
	}
	return false, err
}

func flockRelease(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
