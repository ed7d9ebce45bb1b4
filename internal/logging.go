package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with microsecond
// timestamps, matching what the CLI and server expect to collect.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
