// internal/layout/pack.go
package layout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Register codec: packs and unpacks register words against a structure
// string. Pure geometry. No IO. No side effects.

// ---- SWAP ----

// ApplySwap returns a transposed copy of regs. Byte swap transposes the
// two bytes of every word. Word swap reverses word order within each
// group of group words; group <= 0 means the whole slice. The input is
// never mutated.
func ApplySwap(regs []uint16, m SwapMode, group int) []uint16 {
	out := make([]uint16, len(regs))
	copy(out, regs)

	if m == SwapByte || m == SwapWordByte {
		for i, r := range out {
			out[i] = r<<8 | r>>8
		}
	}
	if m == SwapWord || m == SwapWordByte {
		if group <= 0 || group > len(out) {
			group = len(out)
		}
		for s := 0; s+group <= len(out); s += group {
			for i, j := s, s+group-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// swapGroup picks the word-swap group for a parsed format: the element
// width for a single numeric field, otherwise the whole slice. Mixed
// layouts never carry a swap mode, the legality table forbids it.
func swapGroup(f Format) int {
	if len(f.Fields) != 1 || bytesPerRepeat(f.Fields[0].Code) {
		return 0
	}
	return elemSize(f.Fields[0].Code) / 2
}

// ---- DECODE ----

// Decode unpacks regs into one value per structure element: int64 for
// signed, uint64 for unsigned, float64 for floats, string for `c` and
// `s`, bool for `?`. regs must hold exactly the structure's word count.
func Decode(structure string, m SwapMode, regs []uint16) ([]any, error) {
	f, err := Parse(structure)
	if err != nil {
		return nil, err
	}

	want, err := Words(structure)
	if err != nil {
		return nil, err
	}
	if len(regs) != want {
		return nil, fmt.Errorf("layout: structure %q wants %d registers, got %d", structure, want, len(regs))
	}

	buf := registerBytes(ApplySwap(regs, m, swapGroup(f)))
	order := byteOrder(f)

	var out []any
	pos := 0
	for _, fld := range f.Fields {
		switch {
		case fld.Code == 'x':
			pos += fld.Repeat
		case fld.Code == 'p':
			return nil, fmt.Errorf("layout: pascal strings not supported by the codec")
		case fld.Code == 's':
			out = append(out, string(buf[pos:pos+fld.Repeat]))
			pos += fld.Repeat
		default:
			w := elemSize(fld.Code)
			for r := 0; r < fld.Repeat; r++ {
				v, err := readElem(order, fld.Code, buf[pos:pos+w])
				if err != nil {
					return nil, err
				}
				out = append(out, v)
				pos += w
			}
		}
	}
	return out, nil
}

func readElem(order binary.ByteOrder, code byte, b []byte) (any, error) {
	switch code {
	case 'c':
		return string(b[:1]), nil
	case 'b':
		return int64(int8(b[0])), nil
	case 'B':
		return uint64(b[0]), nil
	case '?':
		return b[0] != 0, nil
	case 'h':
		return int64(int16(order.Uint16(b))), nil
	case 'H':
		return uint64(order.Uint16(b)), nil
	case 'e':
		return float64(float16.Frombits(order.Uint16(b)).Float32()), nil
	case 'i', 'l':
		return int64(int32(order.Uint32(b))), nil
	case 'I', 'L':
		return uint64(order.Uint32(b)), nil
	case 'f':
		return float64(math.Float32frombits(order.Uint32(b))), nil
	case 'q':
		return int64(order.Uint64(b)), nil
	case 'Q':
		return order.Uint64(b), nil
	case 'd':
		return math.Float64frombits(order.Uint64(b)), nil
	}
	return nil, fmt.Errorf("layout: bad char %q in structure", code)
}

// ---- ENCODE ----

// Encode packs values into register words per structure. It accepts the
// value kinds Decode produces, plus plain int for the integer codes.
// The value count must match the structure element count exactly.
func Encode(structure string, m SwapMode, values []any) ([]uint16, error) {
	f, err := Parse(structure)
	if err != nil {
		return nil, err
	}

	size, err := ByteSize(structure)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	order := byteOrder(f)

	pos := 0
	vi := 0
	next := func() (any, error) {
		if vi >= len(values) {
			return nil, fmt.Errorf("layout: structure %q wants more than %d values", structure, len(values))
		}
		v := values[vi]
		vi++
		return v, nil
	}

	for _, fld := range f.Fields {
		switch {
		case fld.Code == 'x':
			pos += fld.Repeat
		case fld.Code == 'p':
			return nil, fmt.Errorf("layout: pascal strings not supported by the codec")
		case fld.Code == 's':
			v, err := next()
			if err != nil {
				return nil, err
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("layout: value %T not usable for `s`", v)
			}
			copy(buf[pos:pos+fld.Repeat], s)
			pos += fld.Repeat
		default:
			w := elemSize(fld.Code)
			for r := 0; r < fld.Repeat; r++ {
				v, err := next()
				if err != nil {
					return nil, err
				}
				if err := writeElem(order, fld.Code, v, buf[pos:pos+w]); err != nil {
					return nil, err
				}
				pos += w
			}
		}
	}
	if vi != len(values) {
		return nil, fmt.Errorf("layout: structure %q consumed %d of %d values", structure, vi, len(values))
	}

	regs := bufRegisters(buf)
	return ApplySwap(regs, m, swapGroup(f)), nil
}

func writeElem(order binary.ByteOrder, code byte, v any, b []byte) error {
	switch code {
	case 'c':
		s, ok := v.(string)
		if !ok || len(s) != 1 {
			return fmt.Errorf("layout: value %v not usable for `c`", v)
		}
		b[0] = s[0]
		return nil
	case '?':
		t, ok := v.(bool)
		if !ok {
			return fmt.Errorf("layout: value %T not usable for `?`", v)
		}
		b[0] = 0
		if t {
			b[0] = 1
		}
		return nil
	case 'e', 'f', 'd':
		x, err := asFloat(v)
		if err != nil {
			return err
		}
		switch code {
		case 'e':
			order.PutUint16(b, float16.Fromfloat32(float32(x)).Bits())
		case 'f':
			order.PutUint32(b, math.Float32bits(float32(x)))
		default:
			order.PutUint64(b, math.Float64bits(x))
		}
		return nil
	case 'b', 'h', 'i', 'l', 'q':
		n, err := asInt(v)
		if err != nil {
			return err
		}
		return putSigned(order, code, n, b)
	case 'B', 'H', 'I', 'L', 'Q':
		u, err := asUint(v)
		if err != nil {
			return err
		}
		return putUnsigned(order, code, u, b)
	}
	return fmt.Errorf("layout: bad char %q in structure", code)
}

func putSigned(order binary.ByteOrder, code byte, n int64, b []byte) error {
	switch code {
	case 'b':
		if n < math.MinInt8 || n > math.MaxInt8 {
			return fmt.Errorf("layout: %d out of range for `b`", n)
		}
		b[0] = byte(n)
	case 'h':
		if n < math.MinInt16 || n > math.MaxInt16 {
			return fmt.Errorf("layout: %d out of range for `h`", n)
		}
		order.PutUint16(b, uint16(n))
	case 'i', 'l':
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("layout: %d out of range for `%c`", n, code)
		}
		order.PutUint32(b, uint32(n))
	case 'q':
		order.PutUint64(b, uint64(n))
	}
	return nil
}

func putUnsigned(order binary.ByteOrder, code byte, u uint64, b []byte) error {
	switch code {
	case 'B':
		if u > math.MaxUint8 {
			return fmt.Errorf("layout: %d out of range for `B`", u)
		}
		b[0] = byte(u)
	case 'H':
		if u > math.MaxUint16 {
			return fmt.Errorf("layout: %d out of range for `H`", u)
		}
		order.PutUint16(b, uint16(u))
	case 'I', 'L':
		if u > math.MaxUint32 {
			return fmt.Errorf("layout: %d out of range for `%c`", u, code)
		}
		order.PutUint32(b, uint32(u))
	case 'Q':
		order.PutUint64(b, u)
	}
	return nil
}

// ---- STRING REGISTERS ----

// EncodeString packs s into words registers, two ASCII bytes per word
// high byte first, zero padded, silently truncated to fit.
func EncodeString(s string, words int) []uint16 {
	regs := make([]uint16, words)
	for i := 0; i < words; i++ {
		var hi, lo byte
		if 2*i < len(s) {
			hi = s[2*i]
		}
		if 2*i+1 < len(s) {
			lo = s[2*i+1]
		}
		regs[i] = uint16(hi)<<8 | uint16(lo)
	}
	return regs
}

// DecodeString is the inverse of EncodeString; trailing zero bytes are
// stripped.
func DecodeString(regs []uint16) string {
	b := registerBytes(regs)
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

// ---- HELPERS ----

func byteOrder(f Format) binary.ByteOrder {
	if f.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// registerBytes joins registers in wire order, big-endian per word.
func registerBytes(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

// bufRegisters splits a byte buffer back into wire-order words, padding
// a trailing odd byte with zero.
func bufRegisters(buf []byte) []uint16 {
	n := (len(buf) + 1) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		hi := uint16(buf[2*i]) << 8
		var lo uint16
		if 2*i+1 < len(buf) {
			lo = uint16(buf[2*i+1])
		}
		out[i] = hi | lo
	}
	return out
}

func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("layout: %d overflows signed range", n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("layout: value %T not usable as integer", v)
}

func asUint(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("layout: %d not usable as unsigned", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("layout: %d not usable as unsigned", n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	}
	return 0, fmt.Errorf("layout: value %T not usable as unsigned", v)
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("layout: value %T not usable as float", v)
}
