package relay

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// MaxLineSize is the read buffer. Lines that fit are forwarded straight from it.
const MaxLineSize = 64 * 1024

// MaxLineLength bounds one line that outgrows MaxLineSize. Such a line is held
// until its newline arrives so the client never receives part of a frame.
const MaxLineLength = 1024 * 1024

var (
	// ErrClientGone means the downstream write or flush failed.
	ErrClientGone = errors.New("relay: client disconnected")

	// ErrLineTooLong means an upstream line exceeded MaxLineLength.
	ErrLineTooLong = errors.New("relay: upstream line too long")

	doneLine = []byte("data: [DONE]")
)

// Stats describes one relayed stream.
type Stats struct {
	Bytes    int64
	Lines    int
	SawDone  bool
	Duration time.Duration
}

// ForEachLine reads src one line at a time and hands each complete line,
// including its trailing newline, to fn before reading the next. It stops on
// the first fn error (wrapped in ErrClientGone), on an upstream read error, or
// when ctx is done. A final line without a newline is completed with one on
// clean EOF and dropped when the upstream fails. fn must not retain line.
func ForEachLine(ctx context.Context, src io.Reader, fn func(line []byte) error) (Stats, error) {
	start := time.Now()
	stats := Stats{}
	r := bufio.NewReaderSize(src, MaxLineSize)
	var pending []byte

	emit := func(line []byte) error {
		if err := fn(line); err != nil {
			return fmt.Errorf("%w: %v", ErrClientGone, err)
		}
		stats.Bytes += int64(len(line))
		stats.Lines++
		if bytes.Equal(bytes.TrimSpace(line), doneLine) {
			stats.SawDone = true
		}
		return nil
	}

	finish := func(err error) (Stats, error) {
		stats.Duration = time.Since(start)
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		chunk, err := r.ReadSlice('\n')
		switch {
		case err == nil:
			line := chunk
			if pending != nil {
				line = append(pending, chunk...)
				pending = nil
			}
			if werr := emit(line); werr != nil {
				return finish(werr)
			}
		case errors.Is(err, bufio.ErrBufferFull):
			if len(pending)+len(chunk) > MaxLineLength {
				return finish(ErrLineTooLong)
			}
			pending = append(pending, chunk...)
		case errors.Is(err, io.EOF):
			if len(pending)+len(chunk) > 0 {
				tail := make([]byte, 0, len(pending)+len(chunk)+1)
				tail = append(append(append(tail, pending...), chunk...), '\n')
				if werr := emit(tail); werr != nil {
					return finish(werr)
				}
			}
			return finish(nil)
		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return finish(ctxErr)
			}
			return finish(fmt.Errorf("relay: upstream read: %w", err))
		}
	}
}

// Pipe forwards src to w byte for byte, flushing after every line so the
// client sees each frame as soon as it arrives.
func Pipe(ctx context.Context, w *bufio.Writer, src io.Reader) (Stats, error) {
	return ForEachLine(ctx, src, func(line []byte) error {
		if _, err := w.Write(line); err != nil {
			return err
		}
		return w.Flush()
	})
}
