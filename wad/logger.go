package wad

import (
	"io"
	"log"
)

var logger *log.Logger = log.New(io.Discard, "", log.LstdFlags)

// SetLogger redirects load progress and warnings. Output is discarded by default.
func SetLogger(l *log.Logger) {
	logger = l
}
