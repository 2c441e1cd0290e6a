package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/goccy/go-json"
)

const recordPrefix = "rec/"

// FileStamp identifies one version of one log file under one set of
// extraction options.
type FileStamp struct {
	Path        string
	Size        int64
	ModTime     time.Time
	Fingerprint string
}

func (s FileStamp) key() []byte {
	var b strings.Builder
	b.WriteString(pathPrefix(s.Path))
	b.WriteString(strconv.FormatInt(s.Size, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(s.ModTime.UnixNano(), 10))
	b.WriteByte('|')
	b.WriteString(s.Fingerprint)
	return []byte(b.String())
}

func pathPrefix(path string) string {
	return recordPrefix + path + "|"
}

// RecordCache memoizes extraction results across runs. A changed file (size
// or mtime) or changed options simply miss.
type RecordCache struct {
	store  *PersistenceStore
	hits   int
	misses int
}

// OpenRecordCache opens the cache in dir; an empty dir keeps it in memory.
func OpenRecordCache(dir string) (*RecordCache, error) {
	ps, err := NewPersistenceStore(dir)
	if err != nil {
		return nil, err
	}
	return &RecordCache{store: ps}, nil
}

// Lookup returns the cached result for stamp.
func (c *RecordCache) Lookup(stamp FileStamp) (extract.Result, bool, error) {
	data, found, err := c.store.Get(stamp.key())
	if err != nil {
		return extract.Result{}, false, err
	}
	if !found {
		c.misses++
		log.Trace(log.CacheModule, "miss", "path", stamp.Path)
		return extract.Result{}, false, nil
	}
	var res extract.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.misses++
		log.Warn(log.CacheModule, "corrupt cache entry", "path", stamp.Path, "err", err)
		return extract.Result{}, false, nil
	}
	c.hits++
	log.Trace(log.CacheModule, "hit", "path", stamp.Path, "status", res.Status)
	return res, true, nil
}

// Store records res for stamp, replacing entries for older versions of the
// same path.
func (c *RecordCache) Store(stamp FileStamp, res extract.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode %s: %w", stamp.Path, err)
	}
	if _, err := c.Invalidate(stamp.Path); err != nil {
		return err
	}
	return c.store.Put(stamp.key(), data)
}

// Invalidate drops every cached version of path.
func (c *RecordCache) Invalidate(path string) (int, error) {
	return c.store.DeletePrefix([]byte(pathPrefix(path)))
}

// Len counts cached entries.
func (c *RecordCache) Len() (int, error) {
	kvs, err := c.store.GetWithPrefix([]byte(recordPrefix))
	if err != nil {
		return 0, err
	}
	return len(kvs), nil
}

// Stats returns lookup hits and misses since open.
func (c *RecordCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

func (c *RecordCache) Close() error {
	log.Debug(log.CacheModule, "close", "hits", c.hits, "misses", c.misses)
	return c.store.Close()
}
