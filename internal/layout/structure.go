// internal/layout/structure.go
package layout

import (
	"fmt"
	"strconv"
)

// Structure mini-language: optional byte-order prefix, then groups of
// an optional decimal repeat followed by a format letter. The repeat
// is an element count for numeric letters and a byte length for `s`,
// `p` and `x`. Matches the wire format character-for-character.

// Field is one parsed group of a structure string.
type Field struct {
	Repeat int
	Code   byte
}

// Format is a fully parsed structure string.
type Format struct {
	LittleEndian bool
	Fields       []Field
}

// ---- ELEMENT SIZES ----

// elemSize returns the byte width of one element of code, or 0 for
// letters outside the mini-language.
func elemSize(code byte) int {
	switch code {
	case 'x', 'c', 'b', 'B', '?', 's', 'p':
		return 1
	case 'h', 'H', 'e':
		return 2
	case 'i', 'I', 'l', 'L', 'f':
		return 4
	case 'q', 'Q', 'd':
		return 8
	}
	return 0
}

// bytesPerRepeat reports whether the repeat prefix of code counts bytes
// instead of elements.
func bytesPerRepeat(code byte) bool {
	return code == 's' || code == 'p' || code == 'x'
}

// ---- PARSING ----

// Parse decodes a structure string. Order prefixes `<`, `>`, `!`, `=`
// and `@` are accepted; only `<` selects little-endian, everything else
// is treated as the big-endian register wire order. Sizes are always
// the standard sizes, native alignment is not modeled.
func Parse(structure string) (Format, error) {
	var f Format

	i := 0
	if i < len(structure) {
		switch structure[i] {
		case '<':
			f.LittleEndian = true
			i++
		case '>', '!', '=', '@':
			i++
		}
	}

	for i < len(structure) {
		c := structure[i]
		if c == ' ' {
			i++
			continue
		}

		start := i
		for i < len(structure) && structure[i] >= '0' && structure[i] <= '9' {
			i++
		}

		repeat := 1
		if i > start {
			n, err := strconv.Atoi(structure[start:i])
			if err != nil {
				return Format{}, fmt.Errorf("layout: repeat count overflow in %q", structure)
			}
			repeat = n
		}

		if i >= len(structure) {
			return Format{}, fmt.Errorf("layout: repeat count given without format char in %q", structure)
		}

		c = structure[i]
		if elemSize(c) == 0 {
			return Format{}, fmt.Errorf("layout: bad char %q in structure %q", c, structure)
		}
		i++

		f.Fields = append(f.Fields, Field{Repeat: repeat, Code: c})
	}

	if len(f.Fields) == 0 {
		return Format{}, fmt.Errorf("layout: empty structure %q", structure)
	}
	return f, nil
}

// ByteSize computes the packed byte size of structure.
func ByteSize(structure string) (int, error) {
	f, err := Parse(structure)
	if err != nil {
		return 0, err
	}
	size := 0
	for _, fld := range f.Fields {
		if bytesPerRepeat(fld.Code) {
			size += fld.Repeat
		} else {
			size += fld.Repeat * elemSize(fld.Code)
		}
	}
	return size, nil
}

// Words computes the register word count of structure, rounding a
// trailing odd byte up to a full word.
func Words(structure string) (int, error) {
	size, err := ByteSize(structure)
	if err != nil {
		return 0, err
	}
	return (size + 1) / 2, nil
}

// ---- CANONICAL FORM ----

// Build renders the canonical structure for units repetitions of tag.
// A single unit carries no repeat digits.
func Build(tag byte, units int) string {
	if units > 1 {
		return fmt.Sprintf(">%d%c", units, tag)
	}
	return fmt.Sprintf(">%c", tag)
}
