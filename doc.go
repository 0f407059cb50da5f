// Package meow implements the MeowMeow text encoding of binary data.
//
// Every source byte becomes two 4-letter tokens, high nibble first. A token
// spells "meow" with each letter's case carrying one bit of the nibble,
// upper case for 1, so 0x00 encodes as "meowmeow" and 0xff as "MEOWMEOW".
// The encoded stream has no separators, headers or checksums. Decoders skip
// line breaks, so wrapped output decodes the same as flat output.
package meow // import "github.com/jdknezek/meowmeow-go"
