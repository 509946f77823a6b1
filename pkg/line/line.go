// Package line models a single editor row as a sequence of grapheme
// clusters. Cursor math uses grapheme indices; rendering uses the display
// columns each cluster occupies.
package line

import (
	"strings"

	"example.com/termedit/internal/grapheme"
)

const (
	// Substitute is drawn in place of clusters with no display width.
	Substitute = '·'
	// ClipMarker replaces a wide cluster cut by either edge of the viewport.
	ClipMarker = '⋯'
)

// width is the number of columns a fragment occupies on screen.
type width int

const (
	half width = 1
	full width = 2
)

type fragment struct {
	grapheme    string
	width       width
	replacement rune // 0 when the grapheme is drawn as is
}

// Line is one row of text. The zero value is an empty line.
type Line struct {
	fragments []fragment
}

// New decomposes text into grapheme clusters.
func New(text string) *Line {
	return &Line{fragments: toFragments(text)}
}

func toFragments(text string) []fragment {
	clusters := grapheme.Split(text)
	if len(clusters) == 0 {
		return nil
	}
	out := make([]fragment, 0, len(clusters))
	for _, c := range clusters {
		f := fragment{grapheme: c, width: half}
		switch w := grapheme.Width(c); {
		case w == 0:
			f.replacement = Substitute
		case w >= 2:
			f.width = full
		}
		out = append(out, f)
	}
	return out
}

// String returns the stored text. Substitute glyphs never appear here.
func (l *Line) String() string {
	var sb strings.Builder
	for _, f := range l.fragments {
		sb.WriteString(f.grapheme)
	}
	return sb.String()
}

// GraphemeCount is the logical length of the line.
func (l *Line) GraphemeCount() int {
	return len(l.fragments)
}

// WidthUntil returns the screen column of the grapheme at index, i.e. the
// rendered width of every fragment before it.
func (l *Line) WidthUntil(index int) int {
	if index > len(l.fragments) {
		index = len(l.fragments)
	}
	cols := 0
	for i := 0; i < index; i++ {
		cols += int(l.fragments[i].width)
	}
	return cols
}

// VisibleGraphemes renders the part of the line covering screen columns
// [start, end). Fragments cut by either edge become ClipMarker.
func (l *Line) VisibleGraphemes(start, end int) string {
	if start >= end {
		return ""
	}
	var sb strings.Builder
	pos := 0
	for _, f := range l.fragments {
		if pos >= end {
			break
		}
		fragEnd := pos + int(f.width)
		if fragEnd > start {
			switch {
			case fragEnd > end || pos < start:
				sb.WriteRune(ClipMarker)
			case f.replacement != 0:
				sb.WriteRune(f.replacement)
			default:
				sb.WriteString(f.grapheme)
			}
		}
		pos = fragEnd
	}
	return sb.String()
}

// InsertChar inserts ch before the grapheme at index. An index past the end
// appends. The line is re-clustered since ch may join a neighbour.
func (l *Line) InsertChar(ch rune, index int) {
	if index < 0 {
		index = 0
	}
	var sb strings.Builder
	for i, f := range l.fragments {
		if i == index {
			sb.WriteRune(ch)
		}
		sb.WriteString(f.grapheme)
	}
	if index >= len(l.fragments) {
		sb.WriteRune(ch)
	}
	l.fragments = toFragments(sb.String())
}

// Delete removes the grapheme at index. Out of range indices are ignored.
func (l *Line) Delete(index int) {
	if index < 0 || index >= len(l.fragments) {
		return
	}
	var sb strings.Builder
	for i, f := range l.fragments {
		if i == index {
			continue
		}
		sb.WriteString(f.grapheme)
	}
	l.fragments = toFragments(sb.String())
}

// Append concatenates other onto l.
func (l *Line) Append(other *Line) {
	if other == nil || len(other.fragments) == 0 {
		return
	}
	l.fragments = toFragments(l.String() + other.String())
}

// Split cuts the line at grapheme at, keeping the head in l and returning
// the tail. If at is past the end, l is unchanged and an empty line is
// returned.
func (l *Line) Split(at int) *Line {
	if at < 0 {
		at = 0
	}
	if at > len(l.fragments) {
		return &Line{}
	}
	tail := make([]fragment, len(l.fragments)-at)
	copy(tail, l.fragments[at:])
	l.fragments = l.fragments[:at:at]
	return &Line{fragments: tail}
}
