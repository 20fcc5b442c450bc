package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// maxLineLength is the longest input line handed to the menus. Longer lines
// are drained and reported as errLineTooLong.
const maxLineLength = 4096

var errLineTooLong = errors.New("input line too long")

type line struct {
	text    string
	tooLong bool
}

// lineReader turns a blocking reader into context-aware line reads.
type lineReader struct {
	lines chan line
	err   error
	done  chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan line),
		done:  make(chan struct{}),
		stop:  make(chan struct{}),
	}
	go lr.scan(r)
	return lr
}

func (lr *lineReader) scan(r io.Reader) {
	defer close(lr.done)

	br := bufio.NewReader(r)
	for {
		l, err := readLine(br)
		if err != nil {
			lr.err = err
			return
		}
		select {
		case lr.lines <- l:
		case <-lr.stop:
			lr.err = io.EOF
			return
		}
	}
}

// readLine reads one line without its terminator. Lines over maxLineLength
// are consumed to the end but their text is dropped.
func readLine(br *bufio.Reader) (line, error) {
	var l line
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return line{}, err
		}
		if !l.tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				l.tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			l.text = string(buf)
			return l, nil
		}
	}
}

// ReadLine blocks until a line is available, the input ends or ctx is done.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-lr.lines:
		if l.tooLong {
			return "", errLineTooLong
		}
		return l.text, nil
	case <-lr.done:
		return "", lr.err
	}
}

// Close releases the scan goroutine once its pending read returns.
func (lr *lineReader) Close() {
	lr.stopOnce.Do(func() { close(lr.stop) })
}
