package corpus

import (
	"regexp"
	"strings"
)

var quoteRe = regexp.MustCompile(`(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`)

// StripHeader drops everything up to and including the first blank line.
// A post without one has no body.
func StripHeader(text string) string {
	_, after, _ := strings.Cut(text, "\n\n")
	return after
}

// StripQuoting drops lines that quote or attribute another post.
func StripQuoting(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !quoteRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// StripFooter drops the signature: everything from the last line that is blank
// or made only of dashes. Text is returned unchanged when that line is the first.
func StripFooter(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	lineNum := len(lines) - 1
	for ; lineNum >= 0; lineNum-- {
		if strings.Trim(strings.TrimSpace(lines[lineNum]), "-") == "" {
			break
		}
	}
	if lineNum > 0 {
		return strings.Join(lines[:lineNum], "\n")
	}
	return text
}
