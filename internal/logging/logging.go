// Package logging builds the process logger.
package logging

import (
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. Only warnings and errors are shown
// unless debug is set. Every entry carries the process session id.
func New(w io.Writer, debug bool) (*log.Logger, *log.Entry) {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: !debug,
	})
	logger.SetLevel(log.WarnLevel)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, logger.WithField("session", uuid.NewString())
}
