package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	std     *log.Logger
	logFile *os.File
	debug   bool
)

// Init directs log output to path, creating parent directories and opening
// the file in append mode. An empty path or "-" logs to stderr.
// Calling Init again replaces the previous destination.
func Init(path string) error {
	var out io.Writer = os.Stderr
	var f *os.File
	if path != "" && path != "-" {
		if err := ensureParentDir(path); err != nil {
			return err
		}
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		out = f
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	std = log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	return nil
}

// InitFile logs to a file next to the running executable, falling back to
// the working directory.
func InitFile(name string) error {
	if exePath, err := os.Executable(); err == nil {
		return Init(filepath.Join(filepath.Dir(exePath), name))
	}
	return Init(filepath.Join(".", name))
}

// SetDebug enables or disables Debugf output.
func SetDebug(on bool) {
	mu.Lock()
	debug = on
	mu.Unlock()
}

// Close closes the underlying log file, if open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		std = nil
		return err
	}
	return nil
}

// Debugf logs only when debug output is enabled.
func Debugf(format string, args ...any) {
	mu.Lock()
	on := debug
	mu.Unlock()
	if on {
		write("DEBUG", format, args...)
	}
}

// Infof logs informational messages.
func Infof(format string, args ...any) { write("INFO", format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { write("WARN", format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { write("ERROR", format, args...) }

func write(level string, format string, args ...any) {
	mu.Lock()
	l := std
	if l == nil {
		// Not initialized: stderr.
		l = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
		std = l
	}
	mu.Unlock()
	l.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
