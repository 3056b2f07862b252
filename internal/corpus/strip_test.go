package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"header and body", "From: a@b.c\nSubject: hi\n\nbody line\n\nmore", "body line\n\nmore"},
		{"no blank line", "From: a@b.c\nSubject: hi", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHeader(tt.in))
		})
	}
}

func TestStripQuoting(t *testing.T) {
	in := "In article <1@x.com> bob@x.com writes:\n> quoted text\n| also quoted\nmy own reply\nAlice wrote: something\nplain"
	assert.Equal(t, "my own reply\nplain", StripQuoting(in))
	assert.Equal(t, "nothing to strip", StripQuoting("nothing to strip"))
}

func TestStripFooter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dash signature", "line one\nline two\n--\nBob\nbob@x.com\n", "line one\nline two"},
		{"blank line signature", "para one\n\npara two\n\nsig", "para one\n\npara two"},
		{"no separator", "only\nbody\nlines", "only\nbody\nlines"},
		{"separator on first line", "----\nrest", "----\nrest"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFooter(tt.in))
		})
	}
}
