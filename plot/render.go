package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/table"
)

// LoadTable reads the figure's CSV.
func LoadTable(f Figure) (*table.Table, error) {
	file, err := os.Open(f.CSV)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	t, err := table.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.CSV, err)
	}
	return t, nil
}

// Render draws f from t once per configured format into outDir and returns
// the written paths.
func Render(f Figure, t *table.Table, outDir string) ([]string, error) {
	c, err := Bind(f, t)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, format := range f.Formats {
		path := filepath.Join(outDir, f.Name+"."+strings.ToLower(format))
		if strings.EqualFold(format, "html") {
			err = saveHTML(c, path)
		} else {
			err = SaveStatic(c, path)
		}
		if err != nil {
			return written, fmt.Errorf("figure %s: %w", f.Name, err)
		}
		log.Info(log.PlotModule, "figure written", "figure", f.Name, "path", path, "slots", len(c.Labels))
		written = append(written, path)
	}
	return written, nil
}

func saveHTML(c *Chart, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return RenderHTML(c, file)
}
