// pkg/audit/audit.go

// Package audit appends one JSON line per destroyed target to a trail
// file. Entries carry a SHA-256 hash of the path instead of the path
// itself, so the trail proves work happened without re-disclosing what
// was destroyed.
package audit

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/xdg"
)

// Entry is one line of the trail.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	PathHash  string    `json:"path_hash"`
	Outcome   string    `json:"outcome"`
	Passes    int       `json:"passes_completed"`
	Algorithm string    `json:"algorithm,omitempty"`
}

// Logger serializes trail writes. Each record is marshalled outside the
// lock and written with a single Write call, so concurrent workers never
// interleave partial lines.
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	log    *zap.Logger
	nop    bool
}

// Open creates or appends to the trail file at path, creating the parent
// directory with owner-only permissions.
func Open(log *zap.Logger, path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), xdg.DirPermPrivate); err != nil {
		return nil, cerr.Wrapf(err, "failed to create audit directory for %s", path)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return nil, cerr.Wrapf(err, "failed to open audit trail %s", path)
	}

	return &Logger{w: f, closer: f, log: log.Named("audit")}, nil
}

// New wraps an arbitrary writer. Used by tests and by callers that manage
// the underlying file themselves.
func New(log *zap.Logger, w io.Writer) *Logger {
	return &Logger{w: w, log: log.Named("audit")}
}

// NewNop returns a trail that records nothing. It lets callers keep an
// unconditional Record call even when auditing is disabled.
func NewNop() *Logger {
	return &Logger{nop: true, log: zap.NewNop()}
}

// Record appends one entry for path. The path is hashed before it leaves
// this function; the clear text never reaches the trail.
func (l *Logger) Record(path, outcome string, passes int, algorithm string) error {
	if l.nop {
		return nil
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		PathHash:  crypto.HashString(path),
		Outcome:   outcome,
		Passes:    passes,
		Algorithm: algorithm,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return cerr.Wrap(err, "failed to marshal audit entry")
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write(line); err != nil {
		return cerr.Wrap(err, "failed to append audit entry")
	}
	return nil
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	if err := l.closer.Close(); err != nil {
		return cerr.Wrap(err, "failed to close audit trail")
	}
	return nil
}

// DefaultPath prefers the system log directory and falls back to the
// user's XDG state directory when that is not writable.
func DefaultPath() string {
	system := filepath.Join(shared.AuditLogDir, shared.AuditLogFile)
	if err := os.MkdirAll(shared.AuditLogDir, xdg.DirPermPrivate); err == nil {
		if f, err := os.OpenFile(system, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite); err == nil {
			_ = f.Close()
			return system
		}
	}
	return xdg.XDGStatePath(shared.LetheID, shared.AuditLogFile)
}

// ReadEntries loads a trail for display. Lines that do not parse are
// skipped rather than failing the whole read, since a crash can leave a
// torn final line.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerr.Wrapf(err, "failed to open audit trail %s", path)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, cerr.Wrapf(err, "failed while reading audit trail %s", path)
	}
	return entries, nil
}
