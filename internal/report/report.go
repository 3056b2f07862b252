// Package report renders the fixed-width console output of the train, label
// and classify commands.
package report

import (
	"fmt"
	"io"
	"strings"

	"topiclab/internal/domain"
)

const (
	trainWidth = 60
	width      = 65
)

func rule(w io.Writer, ch string, n int) {
	fmt.Fprintln(w, strings.Repeat(ch, n))
}

// Banner prints title between two rules.
func Banner(w io.Writer, title string) {
	rule(w, "=", width)
	fmt.Fprintln(w, title)
	rule(w, "=", width)
}

// DiscoveredTopics is the trainer's closing listing.
func DiscoveredTopics(w io.Writer, topics []domain.TopicWords, topN int) {
	fmt.Fprintln(w)
	rule(w, "=", trainWidth)
	fmt.Fprintf(w, "DISCOVERED TOPICS (top %d words each)\n", topN)
	rule(w, "=", trainWidth)
	for _, t := range topics {
		fmt.Fprintf(w, "\nTopic %2d: %s\n", t.ID, strings.Join(t.WordList(), ", "))
	}
	fmt.Fprintln(w)
	rule(w, "=", trainWidth)
}

// WordProbabilities lists every topic's words with their probabilities.
func WordProbabilities(w io.Writer, topics []domain.TopicWords, topN int) {
	Banner(w, fmt.Sprintf("ALL TOPICS (top %d words with probabilities)", topN))
	for _, t := range topics {
		fmt.Fprintf(w, "\nTopic %2d:\n", t.ID)
		for _, wp := range t.Words {
			fmt.Fprintf(w, "  %-20s %.4f\n", wp.Word, wp.Prob)
		}
	}
}

// LabelTable prints one line per topic: id, label and top words.
func LabelTable(w io.Writer, title string, topics []domain.TopicWords) {
	Banner(w, title)
	for _, t := range topics {
		fmt.Fprintf(w, "  Topic %2d → %-25s [%s]\n", t.ID, t.Label, strings.Join(t.WordList(), ", "))
	}
}

// Classification prints the ranked topics of one document.
func Classification(w io.Writer, doc domain.Document, res domain.Result, topTopics, previewLen int) {
	fmt.Fprintln(w)
	rule(w, "=", width)
	fmt.Fprintf(w, "Document : %s\n", doc.Title)
	fmt.Fprintf(w, "Preview  : %s\n", Preview(doc.Text, previewLen))
	rule(w, "─", width)
	fmt.Fprintf(w, "Top %d topics:\n", topTopics)
	for i, c := range res {
		fmt.Fprintf(w, "  #%d  Topic %2d | %-25s | %.4f (%.1f%%)\n", i+1, c.TopicID, c.Label, c.Probability, c.Probability*100)
		fmt.Fprintf(w, "       Top words: %s\n", strings.Join(c.Words, ", "))
	}
	rule(w, "=", width)
}

// Preview cuts text to n characters, marking the cut with "...".
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
