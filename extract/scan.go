package extract

import (
	"regexp"
	"strconv"
)

// document caches pattern scans over one file's text; several rules share
// the refresh and activation series.
type document struct {
	path  string
	text  string
	cache map[*regexp.Regexp][][]string
}

func newDocument(path, text string) *document {
	return &document{path: path, text: text, cache: make(map[*regexp.Regexp][][]string)}
}

func (d *document) matches(re *regexp.Regexp) [][]string {
	if m, ok := d.cache[re]; ok {
		return m
	}
	m := re.FindAllStringSubmatch(d.text, -1)
	d.cache[re] = m
	return m
}

// series returns capture group 1 of every match.
func (d *document) series(re *regexp.Regexp) []float64 {
	return d.group(re, 1)
}

func (d *document) group(re *regexp.Regexp, g int) []float64 {
	ms := d.matches(re)
	if len(ms) == 0 {
		return nil
	}
	out := make([]float64, 0, len(ms))
	for _, m := range ms {
		v, err := strconv.ParseFloat(m[g], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// first returns capture group 1 of the first match.
func (d *document) first(re *regexp.Regexp) (float64, bool) {
	s := d.series(re)
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// buckets groups "name[i-i] = v" lines (i < open) and "name[open-] = v"
// lines by bucket index; the open-ended bucket is stored at index open.
// Only the first occurrence per bucket is kept when firstOnly is set.
func (d *document) buckets(re *regexp.Regexp, open int, firstOnly bool) map[int][]float64 {
	out := make(map[int][]float64)
	for _, m := range d.matches(re) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch {
		case m[2] == "":
			if idx != open {
				continue
			}
		case m[2] != m[1] || idx >= open:
			continue
		}
		v, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		if firstOnly && len(out[idx]) > 0 {
			continue
		}
		out[idx] = append(out[idx], v)
	}
	return out
}
