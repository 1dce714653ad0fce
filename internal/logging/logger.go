package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the application logger. Debug mode logs human readable text,
// otherwise entries are emitted as JSON at info level.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	if debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

// Discard returns a logger that drops everything, for tests and headless use
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
