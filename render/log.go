package render

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.FieldLogger]

func init() {
	SetLogger(nil)
}

// SetLogger sets the logger for the renderer. Nil silences it.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		l = silent
	}
	loggerPtr.Store(&l)
}

func logger() logrus.FieldLogger {
	return *loggerPtr.Load()
}
