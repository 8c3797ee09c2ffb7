// Package logging provides the package-level logrus logger shared by the
// emulator's components. It is configured once: a plain text formatter
// with no timestamps, no colors and no field sorting, since emulator log
// lines are read from a terminal, not ingested by a log pipeline.
package logging

import "github.com/sirupsen/logrus"

// Log is the shared logger. It is never on the CPU hot path: components
// only write to it on edges (ROM load, save-file attach, fatal errors
// such as an illegal opcode, debug-server events), never once per
// instruction or once per scanline.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return l
}

// SetDebug raises the logger to debug level, used by the CLI's --debug flag.
func SetDebug() {
	Log.SetLevel(logrus.DebugLevel)
}
