// Package buffer holds the rows of a document together with its file
// identity and modification state. All edits are addressed by Location and
// treat out-of-range positions as no-ops.
package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/termedit/pkg/line"
)

// Location addresses a grapheme within the buffer.
type Location struct {
	GraphemeIndex int
	LineIndex     int
}

// Buffer is an ordered list of lines.
type Buffer struct {
	lines    []*line.Line
	filePath string
	dirty    bool
}

// New returns an empty, unnamed buffer.
func New() *Buffer {
	return &Buffer{}
}

// Load reads path into a new Buffer. CRLF terminators are normalised and a
// trailing newline does not produce an extra empty row.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	b := &Buffer{filePath: path}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if text == "" {
		return b, nil
	}
	text = strings.TrimSuffix(text, "\n")
	for _, row := range strings.Split(text, "\n") {
		b.lines = append(b.lines, line.New(row))
	}
	return b, nil
}

// Height is the number of rows.
func (b *Buffer) Height() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer has no rows.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the row at index.
func (b *Buffer) Line(index int) (*line.Line, bool) {
	if index < 0 || index >= len(b.lines) {
		return nil, false
	}
	return b.lines[index], true
}

// GraphemeCount returns the length of the row at index, or 0 if there is no
// such row.
func (b *Buffer) GraphemeCount(index int) int {
	if l, ok := b.Line(index); ok {
		return l.GraphemeCount()
	}
	return 0
}

// FilePath returns the path the buffer is bound to, if any.
func (b *Buffer) FilePath() string {
	return b.filePath
}

// FileName returns the base name of the bound file, or "" when unnamed.
func (b *Buffer) FileName() string {
	if b.filePath == "" {
		return ""
	}
	return filepath.Base(b.filePath)
}

// IsFileLoaded reports whether Save has somewhere to write.
func (b *Buffer) IsFileLoaded() bool {
	return b.filePath != ""
}

// IsDirty reports unsaved modifications.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// InsertChar inserts ch at loc. Inserting on the row just past the last one
// creates that row.
func (b *Buffer) InsertChar(ch rune, loc Location) {
	switch {
	case loc.LineIndex < 0 || loc.LineIndex > len(b.lines):
		return
	case loc.LineIndex == len(b.lines):
		b.lines = append(b.lines, line.New(string(ch)))
	default:
		b.lines[loc.LineIndex].InsertChar(ch, loc.GraphemeIndex)
	}
	b.dirty = true
}

// Delete removes the grapheme at loc. At or past the end of a row the next
// row is joined onto it.
func (b *Buffer) Delete(loc Location) {
	row, ok := b.Line(loc.LineIndex)
	if !ok || loc.GraphemeIndex < 0 {
		return
	}
	count := row.GraphemeCount()
	switch {
	case loc.GraphemeIndex >= count && loc.LineIndex+1 < len(b.lines):
		next := b.lines[loc.LineIndex+1]
		b.lines = append(b.lines[:loc.LineIndex+1], b.lines[loc.LineIndex+2:]...)
		row.Append(next)
	case loc.GraphemeIndex < count:
		row.Delete(loc.GraphemeIndex)
	default:
		return
	}
	b.dirty = true
}

// InsertNewline splits the row at loc, moving the tail onto a new row below.
func (b *Buffer) InsertNewline(loc Location) {
	switch {
	case loc.LineIndex < 0 || loc.LineIndex > len(b.lines):
		return
	case loc.LineIndex == len(b.lines):
		b.lines = append(b.lines, &line.Line{})
	default:
		tail := b.lines[loc.LineIndex].Split(loc.GraphemeIndex)
		at := loc.LineIndex + 1
		b.lines = append(b.lines, nil)
		copy(b.lines[at+1:], b.lines[at:])
		b.lines[at] = tail
	}
	b.dirty = true
}

// Save writes every row, each followed by a newline, to the bound file. An
// unnamed buffer is left alone; use SaveAs to give it a path.
func (b *Buffer) Save() error {
	if b.filePath == "" {
		return nil
	}
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(b.filePath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("save %s: %w", b.filePath, err)
	}
	b.dirty = false
	return nil
}

// SaveAs binds the buffer to path and saves it. On failure the previous
// binding is kept.
func (b *Buffer) SaveAs(path string) error {
	if path == "" {
		return os.ErrInvalid
	}
	prev := b.filePath
	b.filePath = path
	if err := b.Save(); err != nil {
		b.filePath = prev
		return err
	}
	return nil
}

// String joins the rows with newlines.
func (b *Buffer) String() string {
	rows := make([]string, len(b.lines))
	for i, l := range b.lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}
