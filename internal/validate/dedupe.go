// internal/validate/dedupe.go
package validate

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// DedupeEntities drops entities whose address key set or name collides
// with an earlier entity in the same hub and platform list. The first
// occurrence always wins; survivors keep their relative order. A single
// forward pass per list: once an entity is accepted it is never
// revisited.
func DedupeEntities(hubs []config.Hub, log *zap.Logger) []config.Hub {
	for i := range hubs {
		hub := &hubs[i]
		for _, p := range hub.Platforms() {
			names := make(map[string]struct{})
			addresses := make(map[string]struct{})

			var drop []int
			for idx := range *p.Entities {
				e := &(*p.Entities)[idx]
				keys := addressKeys(e)

				var dups []string
				for _, k := range keys {
					if _, ok := addresses[k]; ok {
						dups = append(dups, k)
					}
				}

				switch {
				case len(dups) > 0:
					for _, k := range dups {
						log.Warn("duplicate address, entry not loaded",
							zap.String("hub", hub.Name),
							zap.String("platform", p.Platform),
							zap.String("entity", e.Name),
							zap.String("address", k))
					}
					drop = append(drop, idx)
				case contains(names, e.Name):
					log.Warn("duplicate entity name, entry not loaded",
						zap.String("hub", hub.Name),
						zap.String("platform", p.Platform),
						zap.String("entity", e.Name))
					drop = append(drop, idx)
				default:
					names[e.Name] = struct{}{}
					for _, k := range keys {
						addresses[k] = struct{}{}
					}
				}
			}
			*p.Entities = prune(*p.Entities, drop)
		}
	}
	return hubs
}

// addressKeys computes the full key set one entity occupies: the
// primary address qualified by read/write kind, command values and
// device index, plus one key per nested sub-register. Keys within one
// entity are unique.
func addressKeys(e *config.Entity) []string {
	inx := e.DeviceIndex()

	key := strconv.Itoa(e.Address)
	switch {
	case e.InputType != "":
		key += "_" + e.InputType
	case e.WriteType != "":
		key += "_" + e.WriteType
	}
	if e.CommandOn != nil {
		key += "_" + strconv.Itoa(*e.CommandOn)
	}
	if e.CommandOff != nil {
		key += "_" + strconv.Itoa(*e.CommandOff)
	}
	key += "_" + strconv.Itoa(inx)

	keys := []string{key}
	seen := map[string]struct{}{key: {}}
	add := func(addr int) {
		k := fmt.Sprintf("%d_%d", addr, inx)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	if e.TargetTemp != nil {
		add(*e.TargetTemp)
	}
	if e.HVACMode != nil {
		add(e.HVACMode.Address)
	}
	if e.FanMode != nil {
		add(e.FanMode.Address)
	}
	return keys
}

// DedupeHubs drops hubs whose connection key or name collides with an
// earlier hub. Connection collisions are reported before name
// collisions. First wins.
func DedupeHubs(hubs []config.Hub, log *zap.Logger) []config.Hub {
	conns := make(map[string]struct{})
	names := make(map[string]struct{})

	var drop []int
	for i := range hubs {
		hub := &hubs[i]
		name := hub.Name
		if name == "" {
			name = config.DefaultHub
		}
		conn := connectionKey(hub)

		switch {
		case contains(conns, conn):
			log.Warn("duplicate connection, hub not loaded",
				zap.String("hub", name),
				zap.String("connection", conn))
			drop = append(drop, i)
		case contains(names, name):
			log.Warn("duplicate hub name, hub not loaded",
				zap.String("hub", name))
			drop = append(drop, i)
		default:
			conns[conn] = struct{}{}
			names[name] = struct{}{}
		}
	}
	return prune(hubs, drop)
}

// connectionKey identifies one physical connection: the device path for
// serial hubs, host and port joined for network hubs.
func connectionKey(h *config.Hub) string {
	if h.Serial() {
		return string(h.Port)
	}
	return h.Host + "_" + string(h.Port)
}

// ---- helpers ----

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// prune rebuilds list without the elements at the given ascending
// indices. Removal never happens mid-scan.
func prune[T any](list []T, drop []int) []T {
	if len(drop) == 0 {
		return list
	}
	out := list[:0]
	di := 0
	for i := range list {
		if di < len(drop) && drop[di] == i {
			di++
			continue
		}
		out = append(out, list[i])
	}
	return out
}
