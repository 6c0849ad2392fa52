package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/Yester03/ipinfotool/intellib"
)

type logger struct {
	lookupLog zerolog.Logger
}

func (l *logger) LookupError(target string, name string, err error) {
	l.lookupLog.Error().Str("provider", name).Str("target", target).Err(err).Msg("")
}

func newLogger() intellib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
	}
}
