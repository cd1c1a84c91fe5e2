package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sweetHomeGo/spread-analyze/internal/logger"
)

// Resolver locates a source name on disk. The core calls it once per source;
// how the search happens is the caller's business, which keeps environment
// coupling out of the pipeline.
type Resolver interface {
	Resolve(name string) (string, error)
}

// SearchPathResolver resolves source names against an explicit, configured
// list of roots, in order. An absolute path that exists resolves to itself.
type SearchPathResolver struct {
	Roots []string
}

// NewSearchPathResolver builds a resolver over the given roots. An empty
// list degenerates to the current directory.
func NewSearchPathResolver(roots []string) *SearchPathResolver {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &SearchPathResolver{Roots: roots}
}

// Resolve returns the first existing candidate path. On failure the error
// wraps ErrNotFound and lists every location tried.
func (r *SearchPathResolver) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	attempted := make([]string, 0, len(r.Roots))
	for _, root := range r.Roots {
		candidate := filepath.Join(root, name)
		if fileExists(candidate) {
			logger.Debugf("resolved %s -> %s", name, candidate)
			return candidate, nil
		}
		attempted = append(attempted, candidate)
	}
	return "", fmt.Errorf("%w: %s (tried %s)", ErrNotFound, name, strings.Join(attempted, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
