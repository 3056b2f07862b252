package corpus

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topiclab/internal/config"
)

func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

var posts = map[string]string{
	"20news-bydate-train/sci.space/1":      "From: a\n\nthe shuttle reached orbit",
	"20news-bydate-train/sci.space/2":      "From: b\n\n> old news\nlaunch window opens\n--\nsig",
	"20news-bydate-train/rec.hockey/3":     "From: c\n\nthe goalie stopped every puck",
	"20news-bydate-test/rec.hockey/4":      "From: d\n\nplayoff game tonight",
	"20news-bydate-train/rec.hockey/notes": "From: e\n\ncaf\xe9 au lait",
}

func newsgroupsServer(t *testing.T, archive []byte) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newsgroupsConfig(url, cacheDir string) config.CorpusConfig {
	cfg := config.Default().Corpus
	cfg.URL = url
	cfg.CacheDir = cacheDir
	return cfg
}

func TestNewsgroupsFetch(t *testing.T) {
	srv, hits := newsgroupsServer(t, buildArchive(t, posts))
	cfg := newsgroupsConfig(srv.URL, filepath.Join(t.TempDir(), "cache"))

	ng, err := NewNewsgroups(cfg)
	require.NoError(t, err)

	docs, err := ng.Fetch(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"the shuttle reached orbit",
		"launch window opens",
		"the goalie stopped every puck",
		"café au lait",
	}, docs)
	assert.FileExists(t, filepath.Join(cfg.CacheDir, archiveName))

	again, err := ng.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, docs, again)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestNewsgroupsSubsetsAndLimit(t *testing.T) {
	srv, _ := newsgroupsServer(t, buildArchive(t, posts))
	cfg := newsgroupsConfig(srv.URL, t.TempDir())

	cfg.Subset = "all"
	ng, err := NewNewsgroups(cfg)
	require.NoError(t, err)
	docs, err := ng.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 5)

	cfg.Subset = "test"
	ng, err = NewNewsgroups(cfg)
	require.NoError(t, err)
	docs, err = ng.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"playoff game tonight"}, docs)

	cfg.Subset = "train"
	cfg.Limit = 2
	cfg.Remove = nil
	ng, err = NewNewsgroups(cfg)
	require.NoError(t, err)
	docs, err = ng.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Contains(t, d, "From: ")
	}
}

func TestNewsgroupsShuffleIsSeeded(t *testing.T) {
	srv, _ := newsgroupsServer(t, buildArchive(t, posts))
	cfg := newsgroupsConfig(srv.URL, t.TempDir())

	a, err := NewNewsgroups(cfg)
	require.NoError(t, err)
	b, err := NewNewsgroups(cfg)
	require.NoError(t, err)

	first, err := a.Fetch(context.Background())
	require.NoError(t, err)
	second, err := b.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewsgroupsErrors(t *testing.T) {
	cfg := newsgroupsConfig("http://unused", t.TempDir())

	cfg.Subset = "validation"
	_, err := NewNewsgroups(cfg)
	assert.ErrorIs(t, err, ErrUnknownSubset)

	cfg.Subset = "train"
	cfg.Remove = []string{"signatures"}
	_, err = NewNewsgroups(cfg)
	assert.ErrorIs(t, err, ErrUnknownStrip)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	ng, err := NewNewsgroups(newsgroupsConfig(srv.URL, t.TempDir()))
	require.NoError(t, err)
	_, err = ng.Fetch(context.Background())
	assert.ErrorContains(t, err, "HTTP 404")

	empty, _ := newsgroupsServer(t, buildArchive(t, map[string]string{"README": "nothing"}))
	ng, err = NewNewsgroups(newsgroupsConfig(empty.URL, t.TempDir()))
	require.NoError(t, err)
	_, err = ng.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>news</title>
<item><title>Rocket launch</title><description>&lt;p&gt;The &lt;b&gt;rocket&lt;/b&gt; flew&lt;/p&gt;</description></item>
<item><title>Hockey final</title><description>Overtime &amp; a goal</description></item>
</channel></rss>`

func TestFeedsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer srv.Close()

	docs, err := NewFeeds([]string{srv.URL}).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Rocket launch\nThe  rocket  flew", docs[0])
	assert.Equal(t, "Hockey final\nOvertime & a goal", docs[1])
}

func TestFeedsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFeeds([]string{srv.URL}).Fetch(context.Background())
	assert.ErrorContains(t, err, "HTTP 502")

	_, err = NewFeeds(nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestFilesFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.txt"), 0755))

	docs, err := NewFiles(filepath.Join(dir, "*.txt")).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, docs)

	_, err = NewFiles(filepath.Join(dir, "*.md")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestNew(t *testing.T) {
	cfg := config.Default().Corpus

	src, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Newsgroups{}, src)

	cfg.Source = "feeds"
	src, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Feeds{}, src)

	cfg.Source = "files"
	src, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Files{}, src)

	cfg.Source = "kafka"
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrUnknownSource)
}
