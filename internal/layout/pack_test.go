// internal/layout/pack_test.go
package layout

import (
	"math"
	"testing"
)

// ---- swap ----

func TestApplySwap_Byte(t *testing.T) {
	got := ApplySwap([]uint16{0x3412, 0x7856}, SwapByte, 0)
	if got[0] != 0x1234 || got[1] != 0x5678 {
		t.Fatalf("byte swap wrong: %04x %04x", got[0], got[1])
	}
}

func TestApplySwap_WordGroups(t *testing.T) {
	// two 32-bit values of two words each
	got := ApplySwap([]uint16{2, 1, 4, 3}, SwapWord, 2)
	want := []uint16{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word swap wrong at %d: got %v want %v", i, got, want)
		}
	}
}

func TestApplySwap_WordByte(t *testing.T) {
	got := ApplySwap([]uint16{0x3412, 0x7856}, SwapWordByte, 2)
	if got[0] != 0x5678 || got[1] != 0x1234 {
		t.Fatalf("word_byte swap wrong: %04x %04x", got[0], got[1])
	}
}

func TestApplySwap_InputUntouched(t *testing.T) {
	in := []uint16{1, 2}
	_ = ApplySwap(in, SwapWord, 0)
	if in[0] != 1 || in[1] != 2 {
		t.Fatalf("input mutated: %v", in)
	}
}

// ---- decode ----

func TestDecode_Int16Pair(t *testing.T) {
	vals, err := Decode(">2h", SwapNone, []uint16{0x0001, 0xFFFF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[0].(int64) != 1 || vals[1].(int64) != -1 {
		t.Fatalf("unexpected values: %v", vals)
	}
}

func TestDecode_UInt32WordSwap(t *testing.T) {
	vals, err := Decode(">I", SwapWord, []uint16{0x0000, 0x0001})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(uint64) != 0x00010000 {
		t.Fatalf("unexpected value: %v", vals[0])
	}
}

func TestDecode_Float32(t *testing.T) {
	bits := math.Float32bits(1.5)
	regs := []uint16{uint16(bits >> 16), uint16(bits)}
	vals, err := Decode(">f", SwapNone, regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(float64) != 1.5 {
		t.Fatalf("unexpected value: %v", vals[0])
	}
}

func TestDecode_Float16(t *testing.T) {
	vals, err := Decode(">e", SwapNone, []uint16{0x3C00}) // 1.0
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(float64) != 1.0 {
		t.Fatalf("unexpected value: %v", vals[0])
	}

	vals, err = Decode(">e", SwapNone, []uint16{0xC000}) // -2.0
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(float64) != -2.0 {
		t.Fatalf("unexpected value: %v", vals[0])
	}
}

func TestDecode_String(t *testing.T) {
	vals, err := Decode("4s", SwapNone, []uint16{0x4142, 0x4344})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(string) != "ABCD" {
		t.Fatalf("unexpected value: %q", vals[0])
	}
}

func TestDecode_RegisterCountChecked(t *testing.T) {
	if _, err := Decode(">i", SwapNone, []uint16{1}); err == nil {
		t.Fatalf("expected register count error, got nil")
	}
}

func TestDecode_LittleEndian(t *testing.T) {
	vals, err := Decode("<H", SwapNone, []uint16{0x3412})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(uint64) != 0x1234 {
		t.Fatalf("unexpected value: %v", vals[0])
	}
}

// ---- encode ----

func TestEncode_RoundTrip(t *testing.T) {
	regs, err := Encode(">2h", SwapNone, []any{int64(-5), int64(300)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, err := Decode(">2h", SwapNone, regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(int64) != -5 || vals[1].(int64) != 300 {
		t.Fatalf("round trip lost values: %v", vals)
	}
}

func TestEncode_SwapRoundTrip(t *testing.T) {
	regs, err := Encode(">I", SwapWordByte, []any{uint64(0xDEADBEEF)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, err := Decode(">I", SwapWordByte, regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0].(uint64) != 0xDEADBEEF {
		t.Fatalf("round trip lost value: %x", vals[0])
	}
}

func TestEncode_RangeChecked(t *testing.T) {
	if _, err := Encode(">h", SwapNone, []any{int64(70000)}); err == nil {
		t.Fatalf("expected range error, got nil")
	}
}

func TestEncode_ValueCountChecked(t *testing.T) {
	if _, err := Encode(">2h", SwapNone, []any{int64(1)}); err == nil {
		t.Fatalf("expected value count error, got nil")
	}
	if _, err := Encode(">h", SwapNone, []any{int64(1), int64(2)}); err == nil {
		t.Fatalf("expected value count error, got nil")
	}
}

// ---- string registers ----

func TestStringRegisters_RoundTrip(t *testing.T) {
	regs := EncodeString("pump-7", 4)
	if len(regs) != 4 {
		t.Fatalf("unexpected width: %d", len(regs))
	}
	if got := DecodeString(regs); got != "pump-7" {
		t.Fatalf("round trip lost name: %q", got)
	}
}

func TestEncodeString_Truncates(t *testing.T) {
	regs := EncodeString("overlong", 2)
	if got := DecodeString(regs); got != "over" {
		t.Fatalf("expected truncation to 4 bytes, got %q", got)
	}
}

// ---- float16 ----

func TestEncode_Float16RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.5, 2048, -0.25} {
		regs, err := Encode(">e", SwapNone, []any{v})
		if err != nil {
			t.Fatalf("Encode(%v): unexpected error: %v", v, err)
		}
		vals, err := Decode(">e", SwapNone, regs)
		if err != nil {
			t.Fatalf("Decode(%v): unexpected error: %v", v, err)
		}
		if vals[0].(float64) != v {
			t.Fatalf("float16 round trip of %v = %v (reg %04x)", v, vals[0], regs[0])
		}
	}
}

func TestEncode_Float16KnownBits(t *testing.T) {
	regs, err := Encode(">e", SwapNone, []any{1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 1 || regs[0] != 0x3C00 {
		t.Fatalf("half bits of 1.0 = %04x, want 3c00", regs[0])
	}
}

func TestEncode_Float16OverflowSaturates(t *testing.T) {
	regs, err := Encode(">e", SwapNone, []any{1e6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, err := Decode(">e", SwapNone, regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(vals[0].(float64), 1) {
		t.Fatalf("expected +inf, got %v", vals[0])
	}
}
