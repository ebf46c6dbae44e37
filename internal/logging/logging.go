// Package logging holds the process logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It discards everything until Setup is called.
var Logger = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Options selects where and how much to log.
type Options struct {
	// Debug enables debug level.
	Debug bool

	// File, when set, sends logs to a rotated file instead of stderr.
	File string
}

// Setup configures Logger. Without Debug and without File, logs stay discarded.
func Setup(opts Options) {
	switch {
	case opts.File != "":
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
		Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	case opts.Debug:
		Logger.SetOutput(os.Stderr)
		Logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		Logger.SetOutput(io.Discard)
	}

	if opts.Debug {
		Logger.SetLevel(logrus.DebugLevel)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Logger.WithField("component", name)
}
