// Package scanner implements the recursive filesystem traversal that is the
// first stage of the classification pipeline: exclusion filtering, size
// cutoffs, and per-file SHA-256 fingerprinting. It never opens a file for
// write.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/localorganizer/organizer/internal/core"
)

// Config holds the parameters that shape one Scan call.
type Config struct {
	// Root is the directory to walk.
	Root string

	// MinFileSize is the minimum byte count a file must have to be scanned.
	// Strictly-smaller files are excluded. Zero selects DefaultMinFileSize.
	MinFileSize int64

	// Concurrency bounds the number of parallel hashing workers. Defaults to
	// runtime.NumCPU() when <= 0.
	Concurrency int
}

// Stats aggregates counters produced by one Scan call.
type Stats struct {
	FilesScanned        int
	FilesExcluded       int
	DirectoriesExcluded int
	TotalBytes          int64
}

// Result is the aggregate output of one Scan call.
type Result struct {
	Files []core.FileRecord
	Stats Stats
}

// Scanner is the recursive filesystem traversal engine.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{logger: slog.Default().With("component", "scanner")}
}

// candidate is an internal pre-hash record collected during the walk phase.
type candidate struct {
	path    string
	size    int64
	modTime time.Time
}

// Scan walks cfg.Root, applies the exclusion policy, and returns a FileRecord
// per surviving file together with aggregate statistics. A missing root is
// fatal (returns an error); per-entry permission errors are survivable and
// counted as exclusions.
func (s *Scanner) Scan(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	minSize := cfg.MinFileSize
	if minSize <= 0 {
		minSize = DefaultMinFileSize
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var (
		mu         sync.Mutex
		candidates []candidate
		stats      Stats
	)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Permission errors on individual entries are survivable.
			mu.Lock()
			stats.FilesExcluded++
			mu.Unlock()
			s.logger.Debug("walk error, skipping", "path", path, "error", walkErr)
			return nil
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if IsExcludedDir(d.Name()) {
				mu.Lock()
				stats.DirectoriesExcluded++
				mu.Unlock()
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if IsExcludedExtension(ext) {
			mu.Lock()
			stats.FilesExcluded++
			mu.Unlock()
			return nil
		}

		fi, statErr := d.Info()
		if statErr != nil {
			// A file whose stat fails is skipped and counted as excluded.
			mu.Lock()
			stats.FilesExcluded++
			mu.Unlock()
			return nil
		}

		if fi.Size() < minSize {
			mu.Lock()
			stats.FilesExcluded++
			mu.Unlock()
			return nil
		}

		mu.Lock()
		candidates = append(candidates, candidate{path: path, size: fi.Size(), modTime: fi.ModTime()})
		stats.TotalBytes += fi.Size()
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].path < candidates[j].path })

	records := make([]core.FileRecord, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			rec, err := s.buildRecord(gctx, c)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hashing files: %w", err)
	}

	stats.FilesScanned = len(records)

	s.logger.Info("scan complete",
		"files_scanned", stats.FilesScanned,
		"files_excluded", stats.FilesExcluded,
		"directories_excluded", stats.DirectoriesExcluded,
	)

	return &Result{Files: records, Stats: stats}, nil
}

// buildRecord hashes a single candidate into a FileRecord. Hash failures do
// not drop the record -- SHA256 is left nil. A cancelled ctx aborts before
// hashing starts, rather than hashing the file anyway and discarding the
// result.
func (s *Scanner) buildRecord(ctx context.Context, c candidate) (core.FileRecord, error) {
	select {
	case <-ctx.Done():
		return core.FileRecord{}, ctx.Err()
	default:
	}

	rec := core.FileRecord{
		Path:       c.path,
		Size:       c.size,
		ModTime:    c.modTime,
		CreateTime: c.modTime, // stdlib does not portably expose ctime; fall back to mtime.
		Extension:  strings.ToLower(filepath.Ext(c.path)),
	}

	digest, hashErr := hashFile(c.path)
	if hashErr == nil {
		rec.SHA256 = &digest
	} else {
		s.logger.Debug("hash failed, emitting record with null hash", "path", c.path, "error", hashErr)
	}

	return rec, nil
}
