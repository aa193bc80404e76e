// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/xdg"
	"go.uber.org/zap/zapcore"
)

// EnsureLogPermissions creates the log directory and file with permissions
// restricted to the owner. Log records carry operational detail that should
// not be world-readable.
func EnsureLogPermissions(logFilePath string) error {
	dir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(dir, xdg.DirPermPrivate); err != nil {
		return err
	}

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Chmod(logFilePath, xdg.FilePermOwnerReadWrite)
}

// GetLogFileWriter tries to create a file writer at the specified path.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := EnsureLogPermissions(path); err != nil {
		return nil, fmt.Errorf("log permission error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first usable platform log path.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		if err := EnsureLogPermissions(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no writable log path found")
}
