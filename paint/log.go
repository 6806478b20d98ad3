package paint

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.FieldLogger]

func init() {
	SetLogger(nil)
}

// SetLogger sets the logger used by paint tools. Paint tools log nothing by
// default; pass nil to silence them again.
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
