package markdown

import (
	"strings"
)

// TableShape is the cell count of every line of one pipe table.
type TableShape struct {
	// Line is the 1-based line of the header row.
	Line      int
	Columns   int
	RowWidths []int
}

// Rectangular reports whether every row has as many cells as the header.
func (t TableShape) Rectangular() bool {
	for _, w := range t.RowWidths {
		if w != t.Columns {
			return false
		}
	}
	return true
}

// ExtractTables scans body for pipe tables: a row line directly followed by
// a delimiter row, then row lines up to the first line that is not one.
// Lines inside fenced code are ignored. goldmark pads short rows, so cells
// are counted on the source text.
func ExtractTables(body []byte) []TableShape {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	var out []TableShape
	fence := ""
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if f := fenceMarker(trimmed); f != "" {
			switch {
			case fence == "":
				fence = f
			case strings.HasPrefix(f, fence) && strings.TrimLeft(trimmed, fence[:1]) == "":
				fence = ""
			}
			continue
		}
		if fence != "" || !isRow(trimmed) || i+1 >= len(lines) || !isDelimiterRow(strings.TrimSpace(lines[i+1])) {
			continue
		}

		shape := TableShape{Line: i + 1, Columns: len(splitCells(trimmed))}
		j := i + 2
		for ; j < len(lines); j++ {
			row := strings.TrimSpace(lines[j])
			if !isRow(row) {
				break
			}
			shape.RowWidths = append(shape.RowWidths, len(splitCells(row)))
		}
		out = append(out, shape)
		i = j - 1
	}
	return out
}

func fenceMarker(line string) string {
	for _, ch := range []string{"`", "~"} {
		if strings.HasPrefix(line, ch+ch+ch) {
			n := len(line) - len(strings.TrimLeft(line, ch))
			return strings.Repeat(ch, n)
		}
	}
	return ""
}

func isRow(line string) bool {
	return strings.HasPrefix(line, "|")
}

func isDelimiterRow(line string) bool {
	if !isRow(line) {
		return false
	}
	for _, c := range splitCells(line) {
		c = strings.TrimSpace(c)
		c = strings.TrimPrefix(c, ":")
		c = strings.TrimSuffix(c, ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return false
		}
	}
	return true
}

// splitCells splits a row on unescaped pipes, dropping the outer ones.
func splitCells(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line):
			cur.WriteByte(line[i])
			cur.WriteByte(line[i+1])
			i++
		case line[i] == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	return append(cells, cur.String())
}
