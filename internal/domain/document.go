package domain

type Source string

const (
	SourceNewsgroups Source = "newsgroups"
	SourceFeeds      Source = "feeds"
	SourceFiles      Source = "files"
)

type Document struct {
	Title string
	Text  string
}
