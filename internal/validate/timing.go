// internal/validate/timing.go
package validate

import (
	"go.uber.org/zap"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// DefaultScanInterval is the poll interval, in seconds, for entities
// that declare none.
const DefaultScanInterval = 15

// Intervals below this are applied but flagged.
const minSafeInterval = 5

// Timing resolves every entity's scan interval and keeps each hub's
// timeout below the smallest active interval, so a read timeout can
// never outlive the gap between polls. Interval 0 disables polling for
// that entity and never constrains the hub. Timeout and intervals are
// updated in place.
func Timing(hubs []config.Hub, log *zap.Logger) []config.Hub {
	for i := range hubs {
		hub := &hubs[i]
		minInterval := DefaultScanInterval

		for _, p := range hub.Platforms() {
			for j := range *p.Entities {
				e := &(*p.Entities)[j]

				interval := DefaultScanInterval
				if e.ScanInterval != nil {
					interval = *e.ScanInterval
				}
				if interval == 0 {
					continue
				}
				if interval < minSafeInterval {
					log.Warn("scan interval below safe minimum, may cause stability issues",
						zap.String("platform", p.Platform),
						zap.String("entity", e.Name),
						zap.Int("scan_interval", interval))
				}

				resolved := interval
				e.ScanInterval = &resolved
				if interval < minInterval {
					minInterval = interval
				}
			}
		}

		if hub.Timeout > 0 && hub.Timeout > minInterval-1 && minInterval > 1 {
			old := hub.Timeout
			hub.Timeout = minInterval - 1
			log.Warn("timeout adjusted to stay below the minimum scan interval",
				zap.String("hub", hub.Name),
				zap.Int("old", old),
				zap.Int("new", hub.Timeout))
		}
	}
	return hubs
}
