// internal/logging/logging.go
// Package logging builds the process logger from settings.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log formats accepted by New
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to stderr. debug lowers the level to Debug.
func New(debug bool, format string) (*logrus.Logger, error) {
	return NewWithOutput(os.Stderr, debug, format)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(out io.Writer, debug bool, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	switch format {
	case "", FormatText:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, nil
}
