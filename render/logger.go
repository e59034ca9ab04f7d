package render

import (
	"io"
	"log"
)

var logger *log.Logger = log.New(io.Discard, "", log.LstdFlags)

// SetLogger redirects renderer setup warnings. Output is discarded by default.
func SetLogger(l *log.Logger) {
	logger = l
}
