package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const (
	lineQueueDepth = 512
	flushInterval  = time.Second
)

// FileWriter decouples request goroutines from disk. Write enqueues the line
// into a bounded queue consumed by a single worker that owns the buffered
// file handle; a full queue drops the line and bumps a counter that is
// surfaced as an overflow record on the next flush, so drops stay visible in
// the log itself.
type FileWriter struct {
	file    *os.File
	buf     *bufio.Writer
	lines   chan []byte
	quit    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
}

func NewFileWriter(path string, bufferSize int) (*FileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &FileWriter{
		file:  file,
		buf:   bufio.NewWriterSize(file, bufferSize),
		lines: make(chan []byte, lineQueueDepth),
		quit:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Write never blocks the caller. The slice is copied because logrus reuses
// its entry buffer.
func (w *FileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.lines <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

func (w *FileWriter) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case line := <-w.lines:
			_, _ = w.buf.Write(line)
		case <-ticker.C:
			w.flush()
		case <-w.quit:
			w.drain()
			w.flush()
			return
		}
	}
}

// drain empties whatever is still queued at shutdown.
func (w *FileWriter) drain() {
	for {
		select {
		case line := <-w.lines:
			_, _ = w.buf.Write(line)
		default:
			return
		}
	}
}

func (w *FileWriter) flush() {
	if n := w.dropped.Swap(0); n > 0 {
		fmt.Fprintf(w.buf, "{\"level\":\"warning\",\"msg\":\"log queue overflow\",\"dropped\":%d}\n", n)
	}
	_ = w.buf.Flush()
}

// Close flushes the queue and releases the file. The worker exits before the
// handle is closed, so no flush can hit a closed file.
func (w *FileWriter) Close() error {
	close(w.quit)
	w.wg.Wait()
	return w.file.Close()
}
