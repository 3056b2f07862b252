package corpus

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Feeds turns every item of a set of RSS or Atom feeds into one document.
type Feeds struct {
	urls   []string
	client *http.Client
	parser *gofeed.Parser
}

func NewFeeds(urls []string) *Feeds {
	return &Feeds{
		urls:   urls,
		client: &http.Client{Timeout: 15 * time.Second},
		parser: gofeed.NewParser(),
	}
}

func (f *Feeds) Fetch(ctx context.Context) ([]string, error) {
	var docs []string
	for _, url := range f.urls {
		items, err := f.fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", url, err)
		}
		docs = append(docs, items...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %d feeds", ErrNoDocuments, len(f.urls))
	}
	return docs, nil
}

func (f *Feeds) fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		text := strings.TrimSpace(item.Title + "\n" + stripHTML(body))
		if text != "" {
			docs = append(docs, text)
		}
	}
	return docs, nil
}

func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, " ")))
}
