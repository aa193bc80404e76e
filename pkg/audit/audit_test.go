// pkg/audit/audit_test.go

package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/crypto"
)

func TestRecordWritesOneParseableLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(zaptest.NewLogger(t), &buf)

	require.NoError(t, l.Record("/home/alice/secret.txt", "done", 3, "aes-256-ctr"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)

	var entry Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, crypto.HashString("/home/alice/secret.txt"), entry.PathHash)
	assert.Equal(t, "done", entry.Outcome)
	assert.Equal(t, 3, entry.Passes)
	assert.Equal(t, "aes-256-ctr", entry.Algorithm)
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, time.Minute)
	assert.NotContains(t, lines[0], "secret.txt", "clear-text path must never appear")
}

func TestRecordOmitsEmptyAlgorithm(t *testing.T) {
	var buf bytes.Buffer
	l := New(zaptest.NewLogger(t), &buf)

	require.NoError(t, l.Record("/tmp/dir", "done", 0, ""))
	assert.NotContains(t, buf.String(), "algorithm")
}

func TestConcurrentRecordsDoNotInterleave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	l, err := Open(zaptest.NewLogger(t), path)
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, l.Record(filepath.Join("/data", "file", string(rune('a'+n))), "done", n, "chacha20"))
		}(i)
	}
	wg.Wait()
	require.NoError(t, l.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, writers, "every record should survive as a full line")
}

func TestOpenCreatesParentWithPrivatePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "audit.jsonl")

	l, err := Open(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	require.NoError(t, l.Record("/x", "aborted", 1, "aes-256-ctr"))
	require.NoError(t, l.Close())

	parentInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), parentInfo.Mode().Perm())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpenAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	first, err := Open(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	require.NoError(t, first.Record("/run/one", "done", 3, "aes-256-ctr"))
	require.NoError(t, first.Close())

	second, err := Open(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	require.NoError(t, second.Record("/run/two", "done-with-warning", 2, "aes-256-ctr"))
	require.NoError(t, second.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "done", entries[0].Outcome)
	assert.Equal(t, "done-with-warning", entries[1].Outcome)
}

func TestReadEntriesSkipsTornLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	l, err := Open(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	require.NoError(t, l.Record("/good", "done", 3, "aes-256-ctr"))
	require.NoError(t, l.Close())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(`{"timestamp":"2026-01-0`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "torn trailing line should be skipped")
}

func TestNopLoggerRecordsNothing(t *testing.T) {
	l := NewNop()
	require.NoError(t, l.Record("/anything", "done", 3, "aes-256-ctr"))
	require.NoError(t, l.Close())
}
