package meow

import "io"

// EncodedLen returns the number of characters needed to encode n source bytes, without line wrapping.
func EncodedLen(n int) int {
	return n * CharsPerByte
}

type encoder struct {
	wrap int // line length; 0 disables wrapping
	col  int
}

func (e *encoder) reset() {
	e.col = 0
}

// write encodes src and appends it to dst.
func (e *encoder) write(dst, src []byte) []byte {
	for _, c := range src {
		dst = e.token(dst, table[c>>4])
		dst = e.token(dst, table[c&0x0f])
	}
	return dst
}

func (e *encoder) token(dst []byte, tok string) []byte {
	if e.wrap <= 0 {
		return append(dst, tok...)
	}

	for i := 0; i < len(tok); i++ {
		if e.col == e.wrap {
			dst = append(dst, '\n')
			e.col = 0
		}
		dst = append(dst, tok[i])
		e.col++
	}
	return dst
}

// flush terminates a partial line and appends it to dst.
func (e *encoder) flush(dst []byte) []byte {
	if e.wrap > 0 && e.col > 0 {
		dst = append(dst, '\n')
		e.col = 0
	}
	return dst
}

// Encode encodes src and appends it to dst.
func Encode(dst, src []byte) []byte {
	if dst == nil {
		dst = make([]byte, 0, EncodedLen(len(src)))
	}
	var enc encoder
	return enc.write(dst, src)
}

// Encoder encodes data to a wrapped io.Writer.
type Encoder struct {
	w   io.Writer
	enc encoder
	buf []byte
}

// NewEncoder creates a new Encoder that encodes to w.
func NewEncoder(w io.Writer) *Encoder {
	return new(Encoder).Reset(w)
}

// Reset sets the Encoder to encode to w and resets its encoding state.
// The wrap setting is kept.
func (e *Encoder) Reset(w io.Writer) *Encoder {
	e.w = w
	e.enc.reset()
	e.buf = nil
	return e
}

// Wrap makes the Encoder break its output into lines of cols characters.
// cols <= 0 disables wrapping, which is the default.
func (e *Encoder) Wrap(cols int) *Encoder {
	if cols < 0 {
		cols = 0
	}
	e.enc.wrap = cols
	return e
}

// Write encodes data to the wrapped io.Writer.
func (e *Encoder) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	e.buf = e.enc.write(e.buf[:0], data)
	if _, err := e.w.Write(e.buf); err != nil {
		return 0, &IOError{Op: "write", Err: err}
	}
	return len(data), nil
}

// Close terminates the last line if wrapping is enabled. It does not close the wrapped io.Writer.
func (e *Encoder) Close() error {
	e.buf = e.enc.flush(e.buf[:0])
	if len(e.buf) == 0 {
		return nil
	}
	if _, err := e.w.Write(e.buf); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

const bufSize = 32 * 1024

// EncodeStream encodes everything read from src to dst and returns the number of bytes read.
// An empty src writes nothing.
func EncodeStream(dst io.Writer, src io.Reader) (int64, error) {
	enc := NewEncoder(dst)
	n, err := enc.ReadFrom(src)
	if err != nil {
		return n, err
	}
	return n, enc.Close()
}

// ReadFrom encodes src until EOF and returns the number of bytes read from src.
// The Encoder still needs to be closed.
func (e *Encoder) ReadFrom(src io.Reader) (int64, error) {
	if e.w == nil || src == nil {
		return 0, ErrInvalidArgument
	}

	var total int64
	buf := make([]byte, bufSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, err := e.Write(buf[:n]); err != nil {
				return total, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, &IOError{Op: "read", Err: rerr}
		}
	}

	return total, nil
}
