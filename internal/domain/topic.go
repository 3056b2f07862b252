package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// DefaultLabel is the name of a topic nobody has labeled.
func DefaultLabel(id int) string {
	return fmt.Sprintf("Topic_%d", id)
}

// LabelMap maps decimal topic ids to human-readable names.
type LabelMap map[string]string

// DefaultLabels names every topic in [0, numTopics) with its default.
func DefaultLabels(numTopics int) LabelMap {
	m := make(LabelMap, numTopics)
	for i := 0; i < numTopics; i++ {
		m[strconv.Itoa(i)] = DefaultLabel(i)
	}
	return m
}

// Label resolves a topic id, falling back to DefaultLabel for missing or
// empty entries. Safe on a nil map.
func (m LabelMap) Label(id int) string {
	if l, ok := m[strconv.Itoa(id)]; ok && l != "" {
		return l
	}
	return DefaultLabel(id)
}

// MarshalJSON writes keys in numeric order ("2" before "10"); non-numeric keys
// follow in lexical order.
func (m LabelMap) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, m[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

type WordProb struct {
	Word string  `json:"word"`
	Prob float64 `json:"prob"`
}

// TopicWords is a topic with its label and most probable words.
type TopicWords struct {
	ID    int        `json:"id"`
	Label string     `json:"label"`
	Words []WordProb `json:"words"`
}

// WordList drops the probabilities.
func (t TopicWords) WordList() []string {
	out := make([]string, len(t.Words))
	for i, w := range t.Words {
		out[i] = w.Word
	}
	return out
}

// Classification is one ranked topic of a classified document.
type Classification struct {
	TopicID     int      `json:"topic_id"`
	Label       string   `json:"label"`
	Probability float64  `json:"probability"`
	Words       []string `json:"words"`
}

// Result is ordered by probability, highest first.
type Result []Classification
