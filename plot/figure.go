// Package plot draws grouped bar figures from result tables, as static
// images (pdf, png, svg) or interactive HTML pages.
package plot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"gopkg.in/yaml.v2"
)

// Series transforms.
const (
	TransformNone     = ""
	TransformScale    = "scale"
	TransformSlowdown = "slowdown"
)

type Series struct {
	Column    string  `yaml:"column"`
	Label     string  `yaml:"label"`
	Color     string  `yaml:"color"`
	Transform string  `yaml:"transform"`
	Factor    float64 `yaml:"factor"`
}

// Figure is one chart read from a figure file.
type Figure struct {
	Name       string    `yaml:"name"`
	CSV        string    `yaml:"csv"`
	Title      string    `yaml:"title"`
	YLabel     string    `yaml:"ylabel"`
	SuiteOrder []string  `yaml:"suite_order"`
	Gaps       bool      `yaml:"gaps"`
	YMin       *float64  `yaml:"ymin"`
	YMax       *float64  `yaml:"ymax"`
	HLines     []float64 `yaml:"hlines"`
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Formats    []string  `yaml:"formats"`
	Series     []Series  `yaml:"series"`
}

type figureFile struct {
	Figures []Figure `yaml:"figures"`
}

const (
	defaultWidth  = 12
	defaultHeight = 3
)

// LoadFigures reads a YAML figure file. Relative csv paths resolve against
// the file's directory.
func LoadFigures(path string) ([]Figure, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	figs, err := ParseFigures(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range figs {
		if figs[i].CSV != "" && !filepath.IsAbs(figs[i].CSV) {
			figs[i].CSV = filepath.Join(base, figs[i].CSV)
		}
	}
	return figs, nil
}

func ParseFigures(b []byte) ([]Figure, error) {
	var ff figureFile
	if err := yaml.UnmarshalStrict(b, &ff); err != nil {
		return nil, err
	}
	for i := range ff.Figures {
		f := &ff.Figures[i]
		f.applyDefaults()
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	return ff.Figures, nil
}

func (f *Figure) applyDefaults() {
	if len(f.SuiteOrder) == 0 {
		f.SuiteOrder = suites.DefaultOrder()
	}
	if f.Width <= 0 {
		f.Width = defaultWidth
	}
	if f.Height <= 0 {
		f.Height = defaultHeight
	}
	if len(f.Formats) == 0 {
		f.Formats = []string{"pdf"}
	}
	for i := range f.Series {
		s := &f.Series[i]
		if s.Label == "" {
			s.Label = s.Column
		}
		if s.Transform == TransformScale && s.Factor == 0 {
			s.Factor = 1
		}
	}
}

func (f *Figure) Validate() error {
	if f.Name == "" {
		return errors.New("figure without a name")
	}
	if len(f.Series) == 0 {
		return fmt.Errorf("figure %s: %w", f.Name, statserrors.ErrFNoSeries)
	}
	for _, s := range f.Series {
		switch s.Transform {
		case TransformNone, TransformScale, TransformSlowdown:
		default:
			return fmt.Errorf("figure %s series %s: %q: %w", f.Name, s.Column, s.Transform, statserrors.ErrFTransform)
		}
	}
	for _, format := range f.Formats {
		if !isFormat(format) {
			return fmt.Errorf("figure %s: %q: %w", f.Name, format, statserrors.ErrFFormat)
		}
	}
	for _, s := range f.SuiteOrder {
		if !suites.IsSuite(s) {
			return fmt.Errorf("figure %s: %q: %w", f.Name, s, statserrors.ErrCUnknownSuite)
		}
	}
	return nil
}

func isFormat(format string) bool {
	switch strings.ToLower(format) {
	case "pdf", "png", "svg", "html":
		return true
	}
	return false
}

// Select returns the named figures, or all when names is empty.
func Select(figs []Figure, names []string) ([]Figure, error) {
	if len(names) == 0 {
		return figs, nil
	}
	var out []Figure
	for _, n := range names {
		found := false
		for _, f := range figs {
			if f.Name == n {
				out = append(out, f)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%q: %w", n, statserrors.ErrFUnknownFigure)
		}
	}
	return out, nil
}
