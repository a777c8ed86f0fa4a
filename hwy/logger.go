package hwy

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var log atomic.Pointer[zerolog.Logger]

// SetLogger installs the logger used for dispatch diagnostics. The library
// is silent until one is installed. Call it before the first conversion to
// observe the target selection.
func SetLogger(l zerolog.Logger) {
	log.Store(&l)
}

func logger() *zerolog.Logger {
	if l := log.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
