package corpus

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/text/encoding/charmap"

	"topiclab/internal/config"
)

const archiveName = "20news-bydate.tar.gz"

var subsetDirs = map[string][]string{
	"train": {"20news-bydate-train"},
	"test":  {"20news-bydate-test"},
	"all":   {"20news-bydate-train", "20news-bydate-test"},
}

// Newsgroups reads the 20 Newsgroups "bydate" archive, downloading it into
// CacheDir on first use.
type Newsgroups struct {
	url      string
	cacheDir string
	subset   string
	remove   []string
	limit    int
	seed     uint64
	client   *http.Client
}

func NewNewsgroups(cfg config.CorpusConfig) (*Newsgroups, error) {
	if _, ok := subsetDirs[cfg.Subset]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubset, cfg.Subset)
	}
	for _, part := range cfg.Remove {
		switch part {
		case "headers", "footers", "quotes":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrip, part)
		}
	}
	return &Newsgroups{
		url:      cfg.URL,
		cacheDir: cfg.CacheDir,
		subset:   cfg.Subset,
		remove:   cfg.Remove,
		limit:    cfg.Limit,
		seed:     cfg.ShuffleSeed,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

func (n *Newsgroups) Fetch(ctx context.Context) ([]string, error) {
	path, err := n.archive(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := readArchive(path, subsetDirs[n.subset])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: subset %q of %s", ErrNoDocuments, n.subset, path)
	}

	rng := rand.New(rand.NewSource(n.seed))
	rng.Shuffle(len(docs), func(i, j int) { docs[i], docs[j] = docs[j], docs[i] })

	if n.limit > 0 && len(docs) > n.limit {
		docs = docs[:n.limit]
	}
	for i, d := range docs {
		docs[i] = n.strip(d)
	}
	return docs, nil
}

func (n *Newsgroups) strip(text string) string {
	if contains(n.remove, "headers") {
		text = StripHeader(text)
	}
	if contains(n.remove, "footers") {
		text = StripFooter(text)
	}
	if contains(n.remove, "quotes") {
		text = StripQuoting(text)
	}
	return text
}

// archive returns the cached archive path, downloading it if needed.
func (n *Newsgroups) archive(ctx context.Context) (string, error) {
	path := filepath.Join(n.cacheDir, archiveName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(n.cacheDir, 0755); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", n.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", n.url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(n.cacheDir, archiveName+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("download %s: %w", n.url, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// readArchive returns the Latin-1 decoded posts under dirs, ordered by
// directory, then category, then file name.
func readArchive(path string, dirs []string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	posts := make(map[string]string)
	dec := charmap.ISO8859_1.NewDecoder()
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := strings.TrimPrefix(hdr.Name, "./")
		parts := strings.Split(name, "/")
		if len(parts) != 3 || !contains(dirs, parts[0]) {
			continue
		}

		raw, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		text, err := dec.Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		posts[name] = string(text)
	}

	names := make([]string, 0, len(posts))
	for name := range posts {
		names = append(names, name)
	}
	order := make(map[string]int, len(dirs))
	for i, d := range dirs {
		order[d] = i
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.SplitN(names[i], "/", 2), strings.SplitN(names[j], "/", 2)
		if a[0] != b[0] {
			return order[a[0]] < order[b[0]]
		}
		return a[1] < b[1]
	})

	docs := make([]string, len(names))
	for i, name := range names {
		docs[i] = posts[name]
	}
	return docs, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
