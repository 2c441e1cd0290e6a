// Package walker feeds every file under the input directories through the
// extractor, consulting the record cache when one is attached.
package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/storage"
	"github.com/colorfulnotion/dreamstats/timing"
)

// Skip is a file that produced no row.
type Skip struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Summary counts what happened to the files of one walk.
type Summary struct {
	Files        int    `json:"files"`
	Extracted    int    `json:"extracted"`
	Empty        int    `json:"empty"`
	Filtered     int    `json:"filtered"`
	Unidentified int    `json:"unidentified"`
	CacheHits    int    `json:"cache_hits"`
	Skipped      []Skip `json:"skipped,omitempty"`
}

func (s *Summary) add(path string, res extract.Result) {
	s.Files++
	switch res.Status {
	case extract.StatusExtracted:
		s.Extracted++
		if res.Empty() {
			s.Empty++
		}
	case extract.StatusFiltered:
		s.Filtered++
		s.Skipped = append(s.Skipped, Skip{Path: path, Status: res.Status.String(), Reason: res.Reason})
	case extract.StatusUnidentified:
		s.Unidentified++
		s.Skipped = append(s.Skipped, Skip{Path: path, Status: res.Status.String()})
	}
}

type Walker struct {
	opts  extract.Options
	cache *storage.RecordCache
	timer *timing.Recorder
}

// New returns a walker; cache and timer may be nil.
func New(opts extract.Options, cache *storage.RecordCache, timer *timing.Recorder) *Walker {
	if timer == nil {
		timer = timing.New()
	}
	return &Walker{opts: opts, cache: cache, timer: timer}
}

// Walk extracts every file under dirs, in directory order. Any invalid
// directory or unreadable entry aborts the walk.
func (w *Walker) Walk(dirs []string) ([]*extract.Record, Summary, error) {
	var records []*extract.Record
	var sum Summary
	if len(dirs) == 0 {
		return nil, sum, statserrors.ErrWNoInput
	}
	for _, dir := range dirs {
		err := w.WalkDir(dir, func(path string, res extract.Result) {
			sum.add(path, res)
			if res.Ok() {
				records = append(records, res.Record)
			}
		})
		if err != nil {
			return nil, sum, err
		}
	}
	if w.cache != nil {
		sum.CacheHits, _ = w.cache.Stats()
	}
	log.Info(log.WalkModule, "walk done", "dirs", len(dirs), "files", sum.Files, "records", len(records),
		"filtered", sum.Filtered, "unidentified", sum.Unidentified)
	return records, sum, nil
}

// WalkDir calls visit with the extraction result of each regular file
// under dir. Symlinks to regular files are read; links to directories are
// not followed.
func (w *Walker) WalkDir(dir string, visit func(path string, res extract.Result)) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	defer w.timer.Start(timing.StageWalk)()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %v: %w", path, err, statserrors.ErrWUnreadableEntry)
		}
		stat := d.Info
		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				log.Debug(log.WalkModule, "skipping link", "path", path, "err", err)
				return nil
			}
			stat = func() (fs.FileInfo, error) { return info, nil }
		default:
			return nil
		}
		res, err := w.file(path, stat)
		if err != nil {
			return err
		}
		visit(path, res)
		return nil
	})
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", dir, err, statserrors.ErrWInvalidDirectory)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: not a directory: %w", dir, statserrors.ErrWInvalidDirectory)
	}
	return nil
}

func (w *Walker) file(path string, stat func() (fs.FileInfo, error)) (extract.Result, error) {
	var stamp storage.FileStamp
	if w.cache != nil {
		info, err := stat()
		if err != nil {
			return extract.Result{}, fmt.Errorf("%s: %v: %w", path, err, statserrors.ErrWUnreadableEntry)
		}
		stamp = storage.FileStamp{Path: path, Size: info.Size(), ModTime: info.ModTime(), Fingerprint: w.opts.Fingerprint()}
		done := w.timer.Start(timing.StageCache)
		res, found, err := w.cache.Lookup(stamp)
		done()
		if err != nil {
			log.Warn(log.CacheModule, "cache lookup failed", "path", path, "err", err)
		} else if found {
			return res, nil
		}
	}

	text, err := readFile(path, w.timer)
	if err != nil {
		return extract.Result{}, err
	}
	done := w.timer.Start(timing.StageExtract)
	res := extract.Extract(text, path, w.opts)
	done()
	log.Debug(log.WalkModule, "file", "path", path, "result", res.String())

	if w.cache != nil {
		if err := w.cache.Store(stamp, res); err != nil {
			log.Warn(log.CacheModule, "cache store failed", "path", path, "err", err)
		}
	}
	return res, nil
}

// readFile reads one log fully; the file is closed on every path.
func readFile(path string, timer *timing.Recorder) (string, error) {
	defer timer.Start(timing.StageRead)()
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", path, err, statserrors.ErrWUnreadableEntry)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", path, err, statserrors.ErrWUnreadableEntry)
	}
	return string(b), nil
}
