package view

import "fmt"

// DocumentStatus is what the status bar shows about the document.
type DocumentStatus struct {
	TotalLines       int
	CurrentLineIndex int
	IsModified       bool
	FileName         string
}

// Status snapshots the document and caret.
func (v *View) Status() DocumentStatus {
	name := v.buf.FileName()
	if name == "" {
		name = "[No Name]"
	}
	return DocumentStatus{
		TotalLines:       v.buf.Height(),
		CurrentLineIndex: v.location.LineIndex,
		IsModified:       v.buf.IsDirty(),
		FileName:         name,
	}
}

func (s DocumentStatus) ModifiedIndicator() string {
	if s.IsModified {
		return "(modified)"
	}
	return ""
}

func (s DocumentStatus) LineCount() string {
	return fmt.Sprintf("%d lines", s.TotalLines)
}

func (s DocumentStatus) PositionIndicator() string {
	return fmt.Sprintf("%d/%d", s.CurrentLineIndex+1, s.TotalLines)
}
