package render

import (
	"strings"
	"unicode/utf8"
)

// indent is a line prefix together with its visible width, so that a styled
// prefix does not count its escape codes.
type indent struct {
	text  string
	width int
}

func plainIndent(s string) indent {
	return indent{text: s, width: utf8.RuneCountInString(s)}
}

func styledIndent(e Emphasis, role Role, s string) indent {
	return indent{text: e.Apply(role, s), width: utf8.RuneCountInString(s)}
}

// fill wraps text greedily at width columns. Whitespace runs collapse into
// single spaces, a tab in an indent counts as one column and a word longer
// than a line is split. Empty text fills to "".
func fill(text string, width int, first, next indent) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	current := first
	lineWidth := current.width
	hasWord := false

	newLine := func() {
		lines = append(lines, current.text+line.String())
		line.Reset()
		current = next
		lineWidth = current.width
		hasWord = false
	}

	for _, word := range words {
		runes := []rune(word)
		for len(runes) > 0 {
			space := 0
			if hasWord {
				space = 1
			}
			if lineWidth+space+len(runes) <= width {
				if hasWord {
					line.WriteByte(' ')
				}
				line.WriteString(string(runes))
				lineWidth += space + len(runes)
				hasWord = true
				break
			}
			if hasWord {
				newLine()
				continue
			}

			room := max(width-lineWidth, 1)
			line.WriteString(string(runes[:room]))
			runes = runes[room:]
			hasWord = true
			if len(runes) > 0 {
				newLine()
			} else {
				lineWidth += room
			}
		}
	}
	newLine()
	return strings.Join(lines, "\n")
}
