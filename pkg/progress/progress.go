// Package progress decodes the progress signals of apt-get: the Status-Fd
// side channel used by install and remove, and the plain output of update.
package progress

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/model"
)

// Status-Fd line kinds that carry a percentage.
const (
	KindPackageManager = "pmstatus"
	KindDownload       = "dlstatus"
)

// ParseStatusLine decodes "kind:package:percent:message". Lines of any other
// kind or with an unparsable percentage are ignored.
func ParseStatusLine(line string) (model.ProgressEvent, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return model.ProgressEvent{}, false
	}
	kind, pkg, percent, message := parts[0], parts[1], parts[2], parts[3]
	if kind != KindPackageManager && kind != KindDownload {
		return model.ProgressEvent{}, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return model.ProgressEvent{}, false
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf("Processing %s...", pkg)
	}
	return model.ProgressEvent{Percentage: clamp(int(value)), Message: message}, true
}

func clamp(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Tracker forwards only events that raise the percentage above the last one
// emitted.
type Tracker struct {
	last int
	emit func(model.ProgressEvent)
}

// NewTracker creates a Tracker that calls emit for every accepted event.
// emit may be nil.
func NewTracker(emit func(model.ProgressEvent)) *Tracker {
	return &Tracker{emit: emit}
}

// Offer emits e if it advances the percentage and reports whether it did.
func (t *Tracker) Offer(e model.ProgressEvent) bool {
	if e.Percentage <= t.last {
		return false
	}
	t.last = e.Percentage
	if t.emit != nil {
		t.emit(e)
	}
	return true
}

// Complete emits the final 100% event unconditionally.
func (t *Tracker) Complete(message string) {
	t.last = 100
	if t.emit != nil {
		t.emit(model.ProgressEvent{Percentage: 100, Message: message})
	}
}

// Last returns the last emitted percentage.
func (t *Tracker) Last() int {
	return t.last
}

// LineBuffer splits a byte stream into trimmed, non-empty lines, holding
// back a trailing partial line until more data arrives.
type LineBuffer struct {
	pending strings.Builder
}

// Write appends chunk and returns the lines it completed.
func (b *LineBuffer) Write(chunk []byte) []string {
	b.pending.Write(chunk)
	data := b.pending.String()

	idx := strings.LastIndexByte(data, '\n')
	if idx < 0 {
		return nil
	}

	b.pending.Reset()
	b.pending.WriteString(data[idx+1:])
	return splitLines(data[:idx])
}

// Flush returns whatever partial line remains.
func (b *LineBuffer) Flush() []string {
	data := b.pending.String()
	b.pending.Reset()
	return splitLines(data)
}

func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var updateLinePattern = regexp.MustCompile(`^(Get|Hit|Ign):(\d+)\s+(.+)`)

// maxURLLength bounds the URL shown in update progress messages.
const maxURLLength = 60

// UpdateParser estimates "apt-get update" progress from its fetch lines. The
// highest index seen is taken as the total and the index of the latest Get
// or Hit line as the number completed.
type UpdateParser struct {
	total     int
	completed int
}

// ParseLine returns an estimate for a fetch line.
func (p *UpdateParser) ParseLine(line string) (model.ProgressEvent, bool) {
	m := updateLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return model.ProgressEvent{}, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return model.ProgressEvent{}, false
	}

	if index > p.total {
		p.total = index
	}
	if m[1] == "Get" || m[1] == "Hit" {
		p.completed = index
	}
	if p.total == 0 {
		return model.ProgressEvent{}, false
	}

	url := m[3]
	if runes := []rune(url); len(runes) > maxURLLength {
		url = string(runes[:maxURLLength])
	}
	return model.ProgressEvent{
		Percentage: clamp(p.completed * 100 / p.total),
		Message:    fmt.Sprintf("Updating: %s...", url),
	}, true
}
