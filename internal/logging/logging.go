package logging

import (
	"io"
	"log"
	"os"
)

// DebugEnv enables the debug log when set to any non-empty value
const DebugEnv = "SGSPLIT_DEBUG"

// DebugFile is the log file written in the working directory
const DebugFile = "sgsplit-debug.log"

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if SGSPLIT_DEBUG environment variable is set
	if os.Getenv(DebugEnv) == "" {
		Debug = log.New(io.Discard, "", 0)
		Scanner = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	debugFile, err := os.OpenFile(DebugFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scanner = log.New(os.Stderr, "[SCANNER] ", log.Ldate|log.Ltime)
		return
	}

	// Loggers with different prefixes sharing the same file
	Debug = log.New(debugFile, "[DEBUG] ", log.Lmicroseconds)
	Scanner = log.New(debugFile, "[SCANNER] ", log.Lmicroseconds)
}
