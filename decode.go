package meow

import "io"

// DecodedLen returns the number of bytes encoded by n characters, not counting line breaks.
func DecodedLen(n int) int {
	return n / CharsPerByte
}

// framing reports whether c is a line break, which is skipped wherever it appears.
func framing(c byte) bool {
	return c == '\n' || c == '\r'
}

type decodeState uint8

const (
	expectHigh decodeState = iota
	expectLow
	failed
)

type decoder struct {
	state  decodeState
	pos    int  // position in the current token
	nibble byte // bits of the current token so far
	high   byte
	offset int64
	err    error
}

func (d *decoder) reset() {
	*d = decoder{}
}

func (d *decoder) fail(err error) error {
	d.state = failed
	d.err = err
	return err
}

// write decodes src and appends complete bytes to dst.
// After an error the decoder stays failed until reset.
func (d *decoder) write(dst, src []byte) ([]byte, error) {
	if d.state == failed {
		return dst, d.err
	}

	for _, c := range src {
		off := d.offset
		d.offset++
		if framing(c) {
			continue
		}

		bit, ok := classify(d.pos, c)
		if !ok {
			return dst, d.fail(&FormatError{Offset: off, Char: c, Err: ErrInvalidLetter})
		}
		d.nibble = d.nibble<<1 | bit
		d.pos++
		if d.pos < TokenLen {
			continue
		}

		n := d.nibble
		d.pos, d.nibble = 0, 0
		if d.state == expectHigh {
			d.high = n
			d.state = expectLow
		} else {
			dst = append(dst, d.high<<4|n)
			d.state = expectHigh
		}
	}

	return dst, nil
}

// flush checks that the input ended on a byte boundary.
func (d *decoder) flush() error {
	if d.state == failed {
		return d.err
	}
	if d.pos != 0 || d.state == expectLow {
		return d.fail(&FormatError{Offset: d.offset, Err: ErrTruncated})
	}
	return nil
}

// Decode decodes src and appends it to dst.
// On error, dst holds every byte decoded before the malformed input.
func Decode(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, 0, DecodedLen(len(src)))
	}

	var dec decoder
	dst, err := dec.write(dst, src)
	if err != nil {
		return dst, err
	}
	return dst, dec.flush()
}

// maxEmptyReads bounds consecutive (0, nil) reads before giving up, as bufio does.
const maxEmptyReads = 100

// Decoder decodes data from a wrapped io.Reader.
type Decoder struct {
	r   io.Reader
	dec decoder
	in  []byte
	buf []byte
	out []byte // decoded bytes not yet returned; a window into buf
	err error  // returned once out is drained
}

// NewDecoder creates a new Decoder that decodes from r.
func NewDecoder(r io.Reader) *Decoder {
	return new(Decoder).Reset(r)
}

// Reset sets the Decoder to decode from r and resets its decoding state.
func (d *Decoder) Reset(r io.Reader) *Decoder {
	d.r = r
	d.dec.reset()
	d.out = nil
	d.err = nil
	return d
}

func (d *Decoder) fill() {
	if d.r == nil {
		d.err = ErrInvalidArgument
		return
	}
	if d.in == nil {
		d.in = make([]byte, bufSize)
	}

	for empty := 0; empty < maxEmptyReads; {
		n, rerr := d.r.Read(d.in)
		if n == 0 {
			empty++
		} else {
			empty = 0
		}

		var err error
		d.buf, err = d.dec.write(d.buf[:0], d.in[:n])
		d.out = d.buf
		if err != nil {
			d.err = err
			return
		}

		if rerr == io.EOF {
			if err := d.dec.flush(); err != nil {
				d.err = err
			} else {
				d.err = io.EOF
			}
			return
		}
		if rerr != nil {
			d.err = &IOError{Op: "read", Err: rerr}
			return
		}
		if len(d.out) > 0 {
			return
		}
	}

	d.err = &IOError{Op: "read", Err: io.ErrNoProgress}
}

// Read decodes data from the wrapped io.Reader.
// Bytes decoded before malformed input are returned before the error.
func (d *Decoder) Read(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	for len(d.out) == 0 && d.err == nil {
		d.fill()
	}

	n := copy(data, d.out)
	d.out = d.out[n:]
	if len(d.out) == 0 && d.err != nil {
		return n, d.err
	}
	return n, nil
}

// WriteTo decodes the wrapped io.Reader to w until EOF.
// It returns the number of bytes written.
func (d *Decoder) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, ErrInvalidArgument
	}

	var total int64
	for {
		for len(d.out) == 0 && d.err == nil {
			d.fill()
		}

		if len(d.out) > 0 {
			n, err := w.Write(d.out)
			total += int64(n)
			d.out = d.out[n:]
			if err == nil && len(d.out) > 0 {
				err = io.ErrShortWrite
			}
			if err != nil {
				return total, &IOError{Op: "write", Err: err}
			}
		}

		if d.err == io.EOF {
			return total, nil
		}
		if d.err != nil {
			return total, d.err
		}
	}
}

// DecodeStream decodes everything read from src to dst and returns the number of bytes written.
// An empty src writes nothing.
func DecodeStream(dst io.Writer, src io.Reader) (int64, error) {
	if dst == nil || src == nil {
		return 0, ErrInvalidArgument
	}
	return NewDecoder(src).WriteTo(dst)
}
