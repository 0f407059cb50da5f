package meow

const (
	// Letters are the token letters, in position order.
	Letters = "meow"

	// TokenLen is the number of characters in a token.
	TokenLen = len(Letters)

	// CharsPerByte is the number of encoded characters per source byte.
	CharsPerByte = 2 * TokenLen

	// Version identifies the encoding table. Changing the table is a format change.
	Version = "0.1.0"
)

// caseBit is the ASCII bit separating lower case from upper case letters.
const caseBit = 0x20

func buildTable(letters string) [16]string {
	var table [16]string
	for n := range table {
		tok := []byte(letters)
		for pos := range tok {
			if n&(1<<uint(TokenLen-1-pos)) != 0 {
				tok[pos] &^= caseBit
			}
		}
		table[n] = string(tok)
	}
	return table
}

var table = buildTable(Letters) // meow, meoW, meOw, ... MEOW

// Tokens returns a copy of the encoding table, indexed by nibble.
func Tokens() [16]string {
	return table
}

// TokenOf returns the token for the low nibble of n.
func TokenOf(n byte) string {
	return table[n&0x0f]
}

// classify returns the bit carried by c at token position pos.
// ok is false if c is not a case of the letter expected at pos.
func classify(pos int, c byte) (bit byte, ok bool) {
	if c|caseBit != Letters[pos] {
		return 0, false
	}
	if c&caseBit == 0 {
		return 1, true
	}
	return 0, true
}

// NibbleOf returns the nibble encoded by tok.
func NibbleOf(tok []byte) (byte, error) {
	var n byte
	for pos, c := range tok {
		if pos == TokenLen {
			return 0, &FormatError{Offset: int64(pos), Char: c, Err: ErrInvalidLength}
		}
		bit, ok := classify(pos, c)
		if !ok {
			return 0, &FormatError{Offset: int64(pos), Char: c, Err: ErrInvalidLetter}
		}
		n = n<<1 | bit
	}
	if len(tok) < TokenLen {
		return 0, &FormatError{Offset: int64(len(tok)), Err: ErrTruncated}
	}
	return n, nil
}
