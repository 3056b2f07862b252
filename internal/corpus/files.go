package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Files reads one document per regular file matching a glob pattern, in
// lexical path order.
type Files struct {
	pattern string
}

func NewFiles(pattern string) *Files {
	return &Files{pattern: pattern}
}

func (f *Files) Fetch(ctx context.Context) ([]string, error) {
	paths, err := filepath.Glob(f.pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", f.pattern, err)
	}
	sort.Strings(paths)

	var docs []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, string(b))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q", ErrNoDocuments, f.pattern)
	}
	return docs, nil
}
