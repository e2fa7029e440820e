// Package jobcache skips re-running the optimizer when a job's inputs have
// not changed since the last run, mirroring the teacher's image-hash cache
// in internal/cli/pack_cache.go, but hashing job parameters instead of
// image files.
package jobcache

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/nikakis16-prog/sheetcut/internal/jobconfig"
)

// Hash computes a stable hash over a job's sheet parameters and piece list.
// Piece order does not affect the result: pieces are sorted before hashing
// so reordering an unrelated list in a YAML file does not invalidate the
// cache.
func Hash(job jobconfig.Job) uint64 {
	pieces := append([]jobconfig.PieceSpec(nil), job.Pieces...)
	sort.Slice(pieces, func(i, j int) bool {
		if pieces[i].Name != pieces[j].Name {
			return pieces[i].Name < pieces[j].Name
		}
		if pieces[i].Width != pieces[j].Width {
			return pieces[i].Width < pieces[j].Width
		}
		if pieces[i].Height != pieces[j].Height {
			return pieces[i].Height < pieces[j].Height
		}
		return pieces[i].Quantity < pieces[j].Quantity
	})

	h := xxhash.New()
	writeInt := func(v int) { _, _ = h.WriteString(strconv.Itoa(v)); _, _ = h.Write([]byte{0}) }

	writeInt(job.SheetW)
	writeInt(job.SheetH)
	writeInt(job.Kerf)
	writeInt(job.Attempts)
	_, _ = h.WriteString(job.Strategy)
	_, _ = h.Write([]byte{0})
	if job.AllowRotation {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}

	for _, p := range pieces {
		_, _ = h.WriteString(p.Name)
		_, _ = h.Write([]byte{0})
		writeInt(p.Width)
		writeInt(p.Height)
		writeInt(p.Quantity)
	}

	return h.Sum64()
}

// ShouldSkip reports whether a previous run already produced outputPath
// with an identical job hash and the output still exists on disk.
func ShouldSkip(cachePath, outputPath string, nextHash uint64) bool {
	prevHash, ok, err := Read(cachePath)
	if err != nil || !ok {
		return false
	}
	if prevHash != nextHash {
		return false
	}
	if _, err := os.Stat(outputPath); err != nil {
		return false
	}

	return true
}

// Read reads a previously written cache hash.
func Read(path string) (uint64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read job cache: %w", err)
	}
	if len(data) != 8 {
		return 0, false, nil
	}

	return binary.LittleEndian.Uint64(data), true, nil
}

// Write persists a job hash so a later run can detect unchanged inputs.
func Write(path string, hash uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, hash)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write job cache: %w", err)
	}

	return nil
}
