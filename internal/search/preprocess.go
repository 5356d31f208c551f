package search

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

var (
	mdLinkRE     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdEmphasisRE = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)`)
	mdListRE     = regexp.MustCompile(`^([-*+]|\d+[.)])\s+`)
)

// PlainText reduces Markdown to indexable text: every non-blank line becomes
// its own paragraph, table rows are flattened into one line of cells,
// headings and list markers are dropped, and links keep only their text.
//
// The output never starts with a blank line and ends with exactly one
// newline (or is empty).
func PlainText(md []byte) []byte {
	var b strings.Builder
	sc := bufio.NewScanner(bytes.NewReader(md))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	writeFact := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		b.WriteString(s)
		b.WriteString("\n\n")
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		// table row: "| ... |"
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			cells := tableCells(line)
			if len(cells) > 0 {
				writeFact(inline(strings.Join(cells, " ")))
			}
			continue
		}

		line = strings.TrimLeft(line, "#>")
		line = mdListRE.ReplaceAllString(strings.TrimSpace(line), "")
		writeFact(inline(line))
	}

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return nil
	}
	return []byte(out + "\n")
}

// tableCells returns the non-empty cells of a table row, or nil for a
// separator row such as "|---|:--:|".
func tableCells(line string) []string {
	cols := strings.Split(strings.Trim(line, "|"), "|")
	allSep := true
	cleaned := make([]string, 0, len(cols))
	for _, c := range cols {
		cell := strings.TrimSpace(c)
		if cell != "" {
			cleaned = append(cleaned, cell)
		}
		if strings.Trim(cell, ":- ") != "" {
			allSep = false
		}
	}
	if allSep {
		return nil
	}
	return cleaned
}

func inline(s string) string {
	s = mdLinkRE.ReplaceAllString(s, "$1")
	return mdEmphasisRE.ReplaceAllString(s, "")
}
