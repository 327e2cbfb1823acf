package main

import (
	"golang.design/x/clipboard"
)

// colorClipboard moves hex color strings in and out of the system clipboard.
type colorClipboard interface {
	ReadText() string
	WriteText(s string)
}

type systemClipboard struct{}

// newSystemClipboard returns nil when no clipboard is available, e.g. a
// headless X11 session.
func newSystemClipboard() colorClipboard {
	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("clipboard unavailable")
		return nil
	}
	return systemClipboard{}
}

func (systemClipboard) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (systemClipboard) WriteText(s string) {
	clipboard.Write(clipboard.FmtText, []byte(s))
}
