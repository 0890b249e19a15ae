// internal/recovery/recovery.go
package recovery

import (
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

// SetLogger routes panic reports to log. The standard logger is used until
// this is called.
func SetLogger(log *logrus.Logger) {
	logger.Store(log)
}

func report(r any) {
	log := logger.Load()
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"panic": r,
		"stack": string(debug.Stack()),
	}).Error("FATAL: recovered panic")
}

// HandlePanic should be deferred at the top of main() or goroutines.
// It logs panic details and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		report(r)
		os.Exit(1)
	}
}

// HandlePanicFunc logs panic details and calls the provided cleanup function.
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		report(r)
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}
}
