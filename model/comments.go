package model

import "strings"

// Direction selects which way comment recovery walks from the anchor line.
// The builder uses Backward for every declaration and column; Forward exists
// for emitters that annotate from trailing comments.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// commentMarker is the SQL line-comment marker.
const commentMarker = "--"

// RecoverComment collects the contiguous block of line comments adjacent to
// the given byte offset in source, walking line by line in the given
// direction. Collection stops at the first line that is not a comment, so a
// blank line between a comment block and the declaration breaks the
// association. Each collected line has the marker and a single following
// space stripped; trailing blank comment lines are trimmed from the result.
//
// The boolean result is false when no comment lines were found. Offsets must
// be computed against the exact (possibly concatenated) source text.
func RecoverComment(source string, offset int, dir Direction) (string, bool) {
	if offset < 0 || offset > len(source) {
		return "", false
	}

	lines := strings.Split(source, "\n")
	anchor := lineIndex(lines, offset)

	var collected []string
	if dir == Backward {
		for i := anchor - 1; i >= 0; i-- {
			text, ok := commentText(lines[i])
			if !ok {
				break
			}
			collected = append([]string{text}, collected...)
		}
	} else {
		for i := anchor + 1; i < len(lines); i++ {
			text, ok := commentText(lines[i])
			if !ok {
				break
			}
			collected = append(collected, text)
		}
	}

	for len(collected) > 0 && collected[len(collected)-1] == "" {
		collected = collected[:len(collected)-1]
	}
	if len(collected) == 0 {
		return "", false
	}
	return strings.Join(collected, "\n"), true
}

// lineIndex returns the index of the line containing the byte offset.
func lineIndex(lines []string, offset int) int {
	pos := 0
	for i, line := range lines {
		next := pos + len(line) + 1 // +1 for the split newline
		if offset < next {
			return i
		}
		pos = next
	}
	return len(lines) - 1
}

// commentText reports whether the line is a comment line and returns its
// content with the marker and one leading space stripped.
func commentText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, commentMarker) {
		return "", false
	}
	text := strings.TrimPrefix(trimmed, commentMarker)
	text = strings.TrimPrefix(text, " ")
	return text, true
}
