// Package textprep turns raw text into the token stream the dictionary and the
// topic model were built on. Training and inference must go through the same
// Preprocess; any drift silently degrades classification.
package textprep

import "strings"

// MinTokenLength is the shortest token kept.
const MinTokenLength = 3

// Preprocess lowercases text, splits it on whitespace, strips every byte that is
// not an ASCII letter and drops short tokens and stopwords.
func Preprocess(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))

	var b strings.Builder
	for _, f := range fields {
		b.Reset()
		for i := 0; i < len(f); i++ {
			if c := f[i]; c >= 'a' && c <= 'z' {
				b.WriteByte(c)
			}
		}
		w := b.String()
		if len(w) < MinTokenLength || IsStopword(w) {
			continue
		}
		tokens = append(tokens, w)
	}

	return tokens
}

// PreprocessAll runs Preprocess over every document.
func PreprocessAll(docs []string) [][]string {
	out := make([][]string, len(docs))
	for i, d := range docs {
		out[i] = Preprocess(d)
	}
	return out
}
