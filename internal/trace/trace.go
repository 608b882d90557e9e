// Package trace writes an execution trace, one line per
// instruction, optionally brotli compressed.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/cpu"
)

// Tracer writes a trace line for every instruction it is given.
type Tracer struct {
	r cpu.Reader
	w *bufio.Writer

	closers []io.Closer
	buf     []byte
}

// New returns a Tracer that disassembles instructions from r and
// writes them to w. When compress is set the output is a brotli stream.
func New(r cpu.Reader, w io.Writer, compress bool) *Tracer {
	t := &Tracer{r: r}
	if compress {
		bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
		t.closers = append(t.closers, bw)
		w = bw
	}
	t.w = bufio.NewWriter(w)
	return t
}

// Create opens the file at path for tracing, compressing the trace
// when the path ends in ".br".
func Create(r cpu.Reader, path string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace file")
	}
	t := New(r, f, Compressed(path))
	t.closers = append(t.closers, f)
	return t, nil
}

// Compressed reports whether a trace written to path should be
// brotli compressed.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".br")
}

// Trace writes the instruction at regs.PC along with the register
// state before it executes, and the clock count.
func (t *Tracer) Trace(regs cpu.Snapshot, clock uint64) error {
	dis, _ := cpu.Disassemble(t.r, regs.PC)

	t.buf = fmt.Appendf(t.buf[:0], "%04X  %-18s %s CY:%d\n", regs.PC, dis, regs, clock)
	_, err := t.w.Write(t.buf)
	return err
}

// Close flushes the trace and closes any compressor or file
// opened by the Tracer.
func (t *Tracer) Close() error {
	err := t.w.Flush()
	for _, c := range t.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
