// Package report produces the human-facing companions of a result table:
// the input inventory, table comparisons and the run metadata sidecar.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/colorfulnotion/dreamstats/common"
	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/colorfulnotion/dreamstats/walker"
	"github.com/goccy/go-json"
)

// Metadata describes how a result table was produced.
type Metadata struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Version     string              `json:"version"`
	ToolCommit  string              `json:"tool_commit"`
	Config      *config.Config      `json:"config"`
	Inputs      []common.Provenance `json:"inputs"`
	Summary     walker.Summary      `json:"summary"`
	Rows        int                 `json:"rows"`
	Columns     []string            `json:"columns"`
}

func NewMetadata(cfg *config.Config, sum walker.Summary, t *table.Table, now time.Time) *Metadata {
	m := &Metadata{
		GeneratedAt: now.UTC(),
		Version:     common.Version,
		ToolCommit:  common.GetCommitHash(),
		Config:      cfg,
		Summary:     sum,
	}
	for _, d := range cfg.Dirs {
		m.Inputs = append(m.Inputs, common.GetProvenance(d))
	}
	if t != nil {
		m.Rows = t.Len()
		m.Columns = append([]string(nil), t.Columns...)
	}
	return m
}

// WriteMetadata writes m as indented JSON.
func WriteMetadata(path string, m *Metadata) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return err
	}
	log.Debug(log.ReportModule, "metadata written", "path", path, "rows", m.Rows)
	return nil
}

func ReadMetadata(path string) (*Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	return &m, nil
}
