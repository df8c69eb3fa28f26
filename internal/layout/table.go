// internal/layout/table.go
package layout

// Register layout tables.
// Geometry only: no config semantics, no IO.

// ---- DATA TYPES ----

// DataType identifies the wire representation of a register value.
type DataType string

const (
	Int16   DataType = "int16"
	UInt16  DataType = "uint16"
	Float16 DataType = "float16"
	Int32   DataType = "int32"
	UInt32  DataType = "uint32"
	Float32 DataType = "float32"
	Int64   DataType = "int64"
	UInt64  DataType = "uint64"
	Float64 DataType = "float64"
	String  DataType = "string"
	Custom  DataType = "custom"
)

// LegacyInt is the deprecated spelling of Int16 still accepted on input.
const LegacyInt DataType = "int"

// ---- SWAP MODES ----

// SwapMode selects a byte or word transposition applied when decoding
// a multi-word register.
type SwapMode string

const (
	SwapNone     SwapMode = "none"
	SwapByte     SwapMode = "byte"
	SwapWord     SwapMode = "word"
	SwapWordByte SwapMode = "word_byte"
)

// Known reports whether m is a member of the closed SwapMode set.
// The empty string counts as unset, not as a member.
func (m SwapMode) Known() bool {
	switch m {
	case SwapNone, SwapByte, SwapWord, SwapWordByte:
		return true
	}
	return false
}

// ---- LEGALITY ----

// Legality states whether a declaration field may, must, or must not
// appear for a given DataType.
type Legality uint8

const (
	Illegal Legality = iota
	Optional
	Demanded
)

// Entry is the static layout record for one DataType.
// Entries are built once at init and MUST NOT be mutated.
type Entry struct {
	FormatTag byte // structure mini-language letter
	WordCount int  // fixed width in 16-bit words, 0 for variable types

	Count      Legality
	Structure  Legality
	SlaveCount Legality
	SwapByte   Legality
	SwapWord   Legality
}

var table = map[DataType]Entry{
	Int16:   {'h', 1, Illegal, Illegal, Optional, Optional, Illegal},
	UInt16:  {'H', 1, Illegal, Illegal, Optional, Optional, Illegal},
	Float16: {'e', 1, Illegal, Illegal, Optional, Optional, Illegal},
	Int32:   {'i', 2, Illegal, Illegal, Optional, Optional, Optional},
	UInt32:  {'I', 2, Illegal, Illegal, Optional, Optional, Optional},
	Float32: {'f', 2, Illegal, Illegal, Optional, Optional, Optional},
	Int64:   {'q', 4, Illegal, Illegal, Optional, Optional, Optional},
	UInt64:  {'Q', 4, Illegal, Illegal, Optional, Optional, Optional},
	Float64: {'d', 4, Illegal, Illegal, Optional, Optional, Optional},
	String:  {'s', 0, Demanded, Illegal, Illegal, Optional, Illegal},
	Custom:  {'?', 0, Demanded, Demanded, Illegal, Illegal, Illegal},
}

// Lookup returns the layout entry for dt. ok is false for unknown types;
// the legacy alias is not resolved here, callers rewrite it first.
func Lookup(dt DataType) (Entry, bool) {
	e, ok := table[dt]
	return e, ok
}

// ForSwap resolves the legality of a swap mode against this entry.
// WordByte shares the word legality: transposing words is the
// constraining half of the combined mode.
func (e Entry) ForSwap(m SwapMode) Legality {
	switch m {
	case SwapByte:
		return e.SwapByte
	case SwapWord, SwapWordByte:
		return e.SwapWord
	}
	return Optional
}
