// Package logging implements the structured feature-event logger the smart
// charging core and its demo harness log through, following the shape of
// the teacher repository's internal/logger.go: a channel-fed writer so that
// callers do not wait on log output unless its 100-event buffer is full,
// with one of three importance markers prefixing every line.
package logging

import (
	"fmt"
	"log"
	"time"
)

type Importance string

const (
	Info    Importance = " "
	Warning Importance = "?"
	Error   Importance = "!"
)

// Event is one log line queued for the writer goroutine.
type Event struct {
	Importance Importance
	Feature    string
	ScopeId    string
	Text       string
	At         time.Time
}

// Logger is a channel-backed implementation of internal.LogHandler.
type Logger struct {
	writer chan Event
	debug  bool
}

// New starts a Logger with its writer goroutine running.
func New() *Logger {
	l := &Logger{writer: make(chan Event, 100)}
	go l.run()
	return l
}

// SetDebugMode toggles whether Debug events reach the writer, following the
// teacher's Config.IsDebug / LogService.SetDebugMode.
func (l *Logger) SetDebugMode(enabled bool) {
	l.debug = enabled
}

func (l *Logger) run() {
	for event := range l.writer {
		scope := event.ScopeId
		if scope == "" {
			scope = "*"
		}
		log.Printf("%s [%s] %s: %s", event.Importance, scope, event.Feature, event.Text)
	}
}

func (l *Logger) emit(importance Importance, feature, scopeId, text string) {
	l.writer <- Event{Importance: importance, Feature: feature, ScopeId: scopeId, Text: text, At: time.Now()}
}

func (l *Logger) FeatureEvent(feature, scopeId, text string) {
	l.emit(Info, feature, scopeId, text)
}

func (l *Logger) Debug(text string) {
	if !l.debug {
		return
	}
	l.emit(Info, "debug", "", text)
}

func (l *Logger) Warn(text string) {
	l.emit(Warning, "warn", "", text)
}

func (l *Logger) Error(text string, err error) {
	l.emit(Error, "error", "", fmt.Sprintf("%s: %s", text, err))
}
