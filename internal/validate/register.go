// internal/validate/register.go
package validate

import (
	"fmt"

	"github.com/tamzrod/modbus-preflight/internal/config"
	"github.com/tamzrod/modbus-preflight/internal/layout"
)

// Register checks one register declaration against the layout table and
// returns its normalized form: resolved count, canonical structure,
// explicit swap mode. The input is never mutated; name is only used in
// diagnostics.
//
// The returned count stays per-unit even for replicated declarations.
// Replication lives in the structure repeat factor alone, the register
// codec relies on that split.
func Register(name string, in config.Register) (config.Register, error) {
	out := in

	if out.DataType == layout.LegacyInt {
		out.DataType = layout.Int16
	}

	entry, ok := layout.Lookup(out.DataType)
	if !ok {
		return config.Register{}, fmt.Errorf("%w: %s: unknown `data_type: %s`", ErrSchemaViolation, name, out.DataType)
	}

	// slave_count and its legacy spelling are one field; the modern
	// name wins when both appear.
	slaveCount := out.SlaveCount
	if slaveCount == nil {
		slaveCount = out.VirtualCount
	}

	checks := []struct {
		present bool
		rule    layout.Legality
		field   string
	}{
		{out.Count != nil, entry.Count, "count"},
		{out.Structure != "", entry.Structure, "structure"},
		{slaveCount != nil, entry.SlaveCount, "virtual_count / slave_count"},
	}
	for _, c := range checks {
		if !c.present {
			if c.rule == layout.Demanded {
				return config.Register{}, fmt.Errorf("%w: %s: `%s:` missing, demanded with `data_type: %s`",
					ErrSchemaViolation, name, c.field, out.DataType)
			}
			continue
		}
		if c.rule == layout.Illegal {
			return config.Register{}, fmt.Errorf("%w: %s: `%s:` illegal with `data_type: %s`",
				ErrSchemaViolation, name, c.field, out.DataType)
		}
	}

	if out.Swap != "" && out.Swap != layout.SwapNone {
		if !out.Swap.Known() {
			return config.Register{}, fmt.Errorf("%w: %s: unknown `swap: %s`", ErrSchemaViolation, name, out.Swap)
		}
		if entry.ForSwap(out.Swap) == layout.Illegal {
			return config.Register{}, fmt.Errorf("%w: %s: `swap: %s` illegal with `data_type: %s`",
				ErrSchemaViolation, name, out.Swap, out.DataType)
		}
	}

	if out.DataType == layout.Custom {
		size, err := layout.ByteSize(out.Structure)
		if err != nil {
			return config.Register{}, fmt.Errorf("%w: %s: error in structure format: %v", ErrLayoutMismatch, name, err)
		}
		byteCount := *out.Count * 2
		if byteCount != size {
			return config.Register{}, fmt.Errorf("%w: %s: structure is %d bytes but `count: %d` is %d bytes",
				ErrLayoutMismatch, name, size, *out.Count, byteCount)
		}
	} else {
		if out.DataType != layout.String {
			n := entry.WordCount
			out.Count = &n
		}
		units := 1
		if slaveCount != nil && *slaveCount > 0 {
			units = *slaveCount + 1
		}
		out.Structure = layout.Build(entry.FormatTag, units)
	}

	if out.Swap == "" {
		out.Swap = layout.SwapNone
	}
	return out, nil
}
