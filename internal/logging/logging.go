/*
Copyright 2025 Kurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging builds the slog loggers used by the kurl command.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	red    = 31
	yellow = 33
	blue   = 36
	grey   = 38
)

var bufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func freeBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufPool.Put(buf)
}

// ConsoleHandler is a slog.Handler that writes one human readable line per
// record, coloring the level when the output is a terminal.
type ConsoleHandler struct {
	level   slog.Leveler
	w       io.Writer
	mu      *sync.Mutex
	attrs   string
	group   string
	noColor bool
}

// NewConsoleHandler creates a ConsoleHandler writing to w. Colors are
// disabled when NO_COLOR is set or w is not a terminal.
func NewConsoleHandler(w io.Writer, l slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		level:   l,
		w:       w,
		mu:      new(sync.Mutex),
		noColor: os.Getenv("NO_COLOR") != "" || !isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether the handler handles records at the given level.
// The handler ignores records whose level is lower.
func (c *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	minLevel := slog.LevelInfo
	if c.level != nil {
		minLevel = c.level.Level()
	}
	return l >= minLevel
}

// WithAttrs returns a new ConsoleHandler whose attributes consist of c's
// attributes followed by attrs.
func (c *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := bufPool.Get().(*bytes.Buffer)
	defer freeBuffer(buf)

	buf.WriteString(c.attrs)
	for _, attr := range attrs {
		c.writeAttr(buf, attr)
	}

	h := *c
	h.attrs = buf.String()
	return &h
}

// WithGroup returns a new Handler with the given group appended to the
// receiver's existing groups.
func (c *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	h := *c
	if h.group != "" {
		h.group += "." + name
	} else {
		h.group = name
	}
	return &h
}

// Handle formats its argument Record as a single line.
//
// If the Record's time is zero, the time is omitted.
func (c *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	time := ""
	if !r.Time.IsZero() {
		time = r.Time.Format("15:04:05.000")
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer freeBuffer(buf)

	buf.WriteString(c.attrs)
	r.Attrs(func(a slog.Attr) bool {
		c.writeAttr(buf, a)
		return true
	})
	attrs := strings.TrimSuffix(buf.String(), " ")

	levelColor := grey
	switch r.Level {
	case slog.LevelDebug:
		levelColor = blue
	case slog.LevelWarn:
		levelColor = yellow
	case slog.LevelError:
		levelColor = red
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.noColor {
		_, err = fmt.Fprintf(c.w, "[%s] %s %s %s\n", time, r.Level.String(), r.Message, attrs)
		return err
	}
	_, err = fmt.Fprintf(c.w, "[%s] \x1b[%dm%s \x1b[0m%s %s\n", time, levelColor, r.Level.String(), r.Message, attrs)
	return err
}

func (c *ConsoleHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if c.group != "" {
		buf.WriteString(c.group)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteString(": ")
	buf.WriteString(a.Value.String())
	buf.WriteByte(' ')
}

// ParseLevel converts a level name such as "debug" or "warn" to a slog.Level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing to w at the given minimum level.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewConsoleHandler(w, level))
}
