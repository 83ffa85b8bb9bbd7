package testutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger returns a logrus logger that discards output
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
