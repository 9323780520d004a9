// Package catalog holds the read-only list of ad-targetable job titles and
// the lexical search used to narrow it to a bounded candidate set.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Catalog is the fixed list of targetable job titles. Loaded once at startup
// and read-only afterwards, so it is safe to share across requests.
type Catalog struct {
	titles []string
}

// New builds a catalog from an in-memory title list. Titles are trimmed and
// empty entries dropped; order is preserved.
func New(titles []string) *Catalog {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return &Catalog{titles: out}
}

// Load reads a newline-delimited title list from path. The first line is a
// header and is skipped.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var titles []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return &Catalog{titles: titles}, nil
}

// Titles returns the full title list. Callers must not mutate it.
func (c *Catalog) Titles() []string {
	return c.titles
}

// Len reports the number of titles in the catalog.
func (c *Catalog) Len() int {
	return len(c.titles)
}
