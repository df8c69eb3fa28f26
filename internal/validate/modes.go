// internal/validate/modes.go
package validate

import (
	"go.uber.org/zap"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// DedupeModeValues drops mode labels whose register value appeared
// under an earlier label. Values must be unique or the runtime could
// not map a read value back to one mode. First wins.
func DedupeModeValues(values config.ModeValues, log *zap.Logger) config.ModeValues {
	seen := make(map[int]struct{}, len(values))
	out := make(config.ModeValues, 0, len(values))

	for _, mv := range values {
		if _, ok := seen[mv.Value]; ok {
			log.Warn("duplicate mode value, entry not loaded, values must be unique",
				zap.String("mode", mv.Label),
				zap.Int("value", mv.Value))
			continue
		}
		seen[mv.Value] = struct{}{}
		out = append(out, mv)
	}
	return out
}
