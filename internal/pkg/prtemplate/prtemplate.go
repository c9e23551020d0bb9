// Package prtemplate locates a repository's pull request template.
package prtemplate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Candidates are the template locations tried in order, relative to the repository root.
var Candidates = []string{
	filepath.Join(".github", "pull_request_template.md"),
	filepath.Join(".github", "PULL_REQUEST_TEMPLATE.md"),
	filepath.Join("docs", "pull_request_template.md"),
	"pull_request_template.md",
}

// Reader loads the template for the repository at root.
type Reader struct {
	root string
}

// NewReader creates a Reader. An empty root means the current directory.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

// Read returns the first non-empty template and its path. A repository
// without a template yields "", "", nil.
func (r *Reader) Read() (content, path string, err error) {
	for _, candidate := range Candidates {
		p := filepath.Join(r.root, candidate)
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", p, err
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, p, nil
		}
	}
	return "", "", nil
}
