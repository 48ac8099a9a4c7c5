// Package format implements the Visiboole core's display renderer:
// turning a bit vector into a binary, hexadecimal, unsigned-decimal or
// sign-magnitude-decimal string for display output. It is grounded on
// bsdl.ParseBinaryString (bit-string to integer decoding) and
// bsdl.OpcodeToUint (strconv.ParseUint with an
// explicit base), run in the reverse direction, plus a nibble-grouping
// hex renderer modeled on cmd/jtag/cmd/parse.go's "%08X" IDCODE
// formatting.
package format

import (
	"strconv"
	"strings"

	"github.com/visiboole/vbcore/pkg/database"
)

// Base selects one of the four supported render letters.
type Base byte

const (
	Binary   Base = 'b'
	Hex      Base = 'h'
	Unsigned Base = 'u'
	Decimal  Base = 'd'
)

// ParseBase maps a format-specifier letter (already lower-cased and
// validated by pkg/hdl's parser) to a Base; ok is false for any other
// letter.
func ParseBase(letter string) (Base, bool) {
	if len(letter) != 1 {
		return 0, false
	}
	switch Base(letter[0]) {
	case Binary, Hex, Unsigned, Decimal:
		return Base(letter[0]), true
	}
	return 0, false
}

// Format renders v in the given base. An unrecognized base returns "".
func Format(v database.Value, base Base) string {
	switch base {
	case Binary:
		return binary(v)
	case Hex:
		return hex(v)
	case Unsigned:
		return strconv.FormatUint(v.Uint(), 10)
	case Decimal:
		return decimal(v)
	}
	return ""
}

// binary concatenates each bit as '0'/'1', MSB-first.
func binary(v database.Value) string {
	return v.String()
}

// hex groups bits into 4-bit nibbles counted from the LSB, zero-padding
// the most-significant nibble if the width isn't a multiple of 4, and
// renders each nibble as one hex digit.
func hex(v database.Value) string {
	width := v.Width()
	if width == 0 {
		return ""
	}
	nibbles := (width + 3) / 4
	padded := make(database.Value, nibbles*4)
	offset := len(padded) - width
	copy(padded[offset:], v)

	var b strings.Builder
	for i := 0; i < nibbles; i++ {
		start := i * 4
		n := padded[start : start+4]
		b.WriteByte(hexDigit(n))
	}
	return b.String()
}

func hexDigit(nibble database.Value) byte {
	var n uint8
	for _, bit := range nibble {
		n <<= 1
		if bit {
			n |= 1
		}
	}
	const digits = "0123456789abcdef"
	return digits[n]
}

// decimal implements the sign-magnitude decimal convention: if the
// MSB is 1, the value is the negation of the unsigned decoding of the
// remaining (low) bits; otherwise it equals the unsigned rendering.
// This is the legacy-repo's signed-decimal convention, not two's
// complement.
func decimal(v database.Value) string {
	if v.Width() == 0 {
		return "0"
	}
	if !v[0] {
		return strconv.FormatUint(v.Uint(), 10)
	}
	magnitude := v[1:].Uint()
	return "-" + strconv.FormatUint(magnitude, 10)
}

// NextValue returns v incremented by one modulo 2^width, the wraparound
// used by Design.ClickVector and Design.ClickFormat to cycle a
// multi-bit field through its next value. The current display base does not change the
// arithmetic, only how the result would be rendered by Format.
func NextValue(v database.Value) database.Value {
	width := v.Width()
	if width == 0 {
		return v
	}
	mask := uint64(1)<<uint(width) - 1
	return database.UintValue((v.Uint()+1)&mask, width)
}
