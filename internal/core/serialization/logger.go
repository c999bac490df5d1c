package serialization

import (
	"sync/atomic"

	"github.com/zeusync/inspect/internal/core/observability/log"
)

var pkgLogger atomic.Pointer[log.Log]

// SetLogger replaces the logger used by the package. Passing nil restores the
// process default.
func SetLogger(l log.Log) {
	if l == nil {
		pkgLogger.Store(nil)
		return
	}
	pkgLogger.Store(&l)
}

func logger() log.Log {
	if l := pkgLogger.Load(); l != nil {
		return *l
	}
	return log.Provide()
}
