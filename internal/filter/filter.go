// Package filter applies post-hoc line filters to graph-statement output,
// replacing the external grep pipeline the tool historically shelled out to.
package filter

import "strings"

// Names keeps the lines containing at least one whole-word occurrence of any
// of the given names. An empty name list keeps every line. Word boundaries
// are positions where the neighbor is not a letter, digit, or underscore.
func Names(lines []string, names []string) []string {
	if len(names) == 0 {
		return lines
	}
	var kept []string
	for _, line := range lines {
		for _, name := range names {
			if containsWord(line, name) {
				kept = append(kept, line)
				break
			}
		}
	}
	return kept
}

// Statements drops wrapper and header lines from an existing graph document,
// keeping only node and edge statements. A line is dropped when it contains
// any of '#', '{', '}', '='.
func Statements(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if strings.ContainsAny(line, "#{}=") {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// containsWord reports whether line contains s as a whole word.
func containsWord(line, s string) bool {
	if s == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(line[start:], s)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(s)
		beforeOK := i == 0 || !isWordByte(line[i-1])
		afterOK := end == len(line) || !isWordByte(line[end])
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
