package kprotocol

import (
	"fmt"
	"log"
)

// Debug channel names. Passed to Logger so the caller can filter by
// subsystem.
const (
	DebugBroker   = "BROKER"
	DebugTopic    = "TOPIC"
	DebugMetadata = "METADATA"
	DebugFeature  = "FEATURE"
	DebugCgrp     = "CGRP"
	DebugConsumer = "CONSUMER"
	DebugMsg      = "MSG"
)

// Logger is the minimal leveled hook this package calls into. Callers
// inject an implementation (or leave it nil, in which case debug/trace
// calls are dropped) rather than this package importing a
// structured-logging framework of its own.
type Logger interface {
	Debugf(channel, format string, args ...interface{})
	Tracef(channel, format string, args ...interface{})
}

// StdLogger adapts the standard library's log.Logger to Logger. Trace lines
// are folded into Debugf; most deployments don't need the distinction.
type StdLogger struct {
	L *log.Logger
}

func (s StdLogger) Debugf(channel, format string, args ...interface{}) {
	s.L.Printf("[%s] %s", channel, fmt.Sprintf(format, args...))
}

func (s StdLogger) Tracef(channel, format string, args ...interface{}) {
	s.L.Printf("[%s] %s", channel, fmt.Sprintf(format, args...))
}

// nopLogger discards everything; used when a caller passes a nil Logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, string, ...interface{}) {}
func (nopLogger) Tracef(string, string, ...interface{}) {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
