package config

import (
	"io"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// AuditLogPath returns the rotated log file path for a named log under
// the configured logging directory.
func AuditLogPath(lc LoggingConfig, name string) string {
	return filepath.Join(lc.Dir, name+".log")
}

// NewRotatingWriter returns a size- and age-bounded appender for path.
// lumberjack creates the parent directory as needed.
func NewRotatingWriter(path string, rc RotationConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rc.MaxSizeMB,
		MaxAge:     rc.MaxAgeDays,
		MaxBackups: rc.MaxBackups,
		Compress:   rc.Compress,
	}
}
