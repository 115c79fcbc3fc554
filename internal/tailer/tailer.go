package tailer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"traefik-monitor/internal/shared/metrics"
)

// Tailer incrementally reads lines appended to a growing log file. It is
// created seeked to end-of-file, so content that existed before startup is
// never returned. Not safe for concurrent use: the poll loop is its only
// caller.
type Tailer struct {
	file     *os.File
	reader   *bufio.Reader
	position int64
	path     string
}

// New opens the file at path for tailing and records end-of-file as the
// starting position. An open failure is fatal: without a source there is
// nothing to monitor.
func New(path string) (*Tailer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errOpenFailed(path, err)
	}

	position, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, errOpenFailed(path, err)
	}

	return &Tailer{
		file:     file,
		reader:   bufio.NewReader(file),
		position: position,
		path:     path,
	}, nil
}

// Poll returns the complete lines appended since the previous call, trimmed
// of surrounding whitespace with empty lines dropped. The recorded position
// advances by the exact byte count of each complete line, so a trailing
// fragment without a terminator is deferred to the next poll. When the file
// has not grown (including the shrink case, which is deliberately not
// handled) Poll returns no lines and leaves the position untouched, so
// repeated no-op polls are idempotent. Read errors are transient: the caller
// logs and keeps polling.
func (t *Tailer) Poll() ([]string, error) {
	size, err := t.file.Seek(0, io.SeekEnd)
	if err != nil {
		metricPollsTotal.WithLabelValues(codeReadFailed).Inc()
		return nil, errReadFailed(err)
	}

	if size <= t.position {
		// No new data. Restore the cursor so the next poll starts clean.
		if _, err := t.file.Seek(t.position, io.SeekStart); err != nil {
			metricPollsTotal.WithLabelValues(codeReadFailed).Inc()
			return nil, errReadFailed(err)
		}
		metricPollsTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return nil, nil
	}

	if _, err := t.file.Seek(t.position, io.SeekStart); err != nil {
		metricPollsTotal.WithLabelValues(codeReadFailed).Inc()
		return nil, errReadFailed(err)
	}
	t.reader.Reset(t.file)

	var lines []string
	for {
		line, err := t.reader.ReadString('\n')
		if err == io.EOF {
			// Unterminated trailing fragment: leave it for the next poll.
			break
		}
		if err != nil {
			metricPollsTotal.WithLabelValues(codeReadFailed).Inc()
			return nil, errReadFailed(err)
		}

		t.position += int64(len(line))
		metricBytesTotal.Add(float64(len(line)))

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		metricLinesTotal.Inc()
	}

	metricPollsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return lines, nil
}

// Position returns the byte offset of the next unread byte.
func (t *Tailer) Position() int64 {
	return t.position
}

// Path returns the tailed file path.
func (t *Tailer) Path() string {
	return t.path
}

// Close releases the underlying file handle.
func (t *Tailer) Close() error {
	return t.file.Close()
}
