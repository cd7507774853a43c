package qfilter

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-level structured logger, grounded on
// valentinesamuel-activelog (the only example repo with a logging
// dependency) and replacing the teacher's bare log.Printf debug line in
// executor.go. Callers can redirect it with SetLogger, e.g. to attach
// request-scoped fields or route it through an application's own logger.
var logger zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "qfilter").Logger()

// SetLogger replaces the package-level logger used for compiled-SQL debug
// output (executor.go's runCount/runRows).
func SetLogger(l zerolog.Logger) {
	logger = l
}
