// Package logsink implements the operator-facing progress log.
//
// A Sink is an append-only sequence of text lines. Every line gets a
// monotonically increasing sequence number so that a polling reader (the log
// pane of the HTTP shell) can ask for everything newer than what it has
// already shown. Lines are optionally mirrored to an io.Writer, one per line.
package logsink

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultLimit bounds the number of lines retained in memory.
const DefaultLimit = 2000

// Logger is the write side consumed by the merge, stamp and batch packages.
type Logger interface {
	Log(msg string)
	Logf(format string, args ...any)
}

// Line is one retained log message.
type Line struct {
	Seq  uint64    `json:"seq"`
	Time time.Time `json:"ts"`
	Text string    `json:"text"`
}

// Sink is safe for concurrent use.
type Sink struct {
	mu    sync.Mutex
	out   io.Writer
	limit int
	next  uint64
	lines []Line
}

// New returns a sink mirroring to out (may be nil) and retaining at most
// limit lines. A non-positive limit selects DefaultLimit.
func New(out io.Writer, limit int) *Sink {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Sink{out: out, limit: limit}
}

func (s *Sink) Log(msg string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	if len(s.lines) == s.limit {
		copy(s.lines, s.lines[1:])
		s.lines = s.lines[:s.limit-1]
	}
	s.lines = append(s.lines, Line{Seq: s.next, Time: time.Now(), Text: msg})
	if s.out != nil {
		_, _ = io.WriteString(s.out, msg+"\n")
	}
}

func (s *Sink) Logf(format string, args ...any) {
	s.Log(fmt.Sprintf(format, args...))
}

// Since returns the retained lines with a sequence number greater than seq.
func (s *Sink) Since(seq uint64) []Line {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		if l.Seq > seq {
			out = append(out, l)
		}
	}
	return out
}

// Texts returns the text of every retained line in order.
func (s *Sink) Texts() []string {
	lines := s.Since(0)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Discard drops every message.
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(string)          {}
func (discard) Logf(string, ...any) {}
