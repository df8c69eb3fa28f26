// internal/validate/pipeline.go
package validate

import (
	"go.uber.org/zap"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// Pipeline runs the full load-time verification chain over a parsed
// configuration tree: per-entity scalar coercion and register
// validation, timing normalization, then entity, hub and mode-value
// deduplication, in that order. After Run the tree is internally
// consistent and safe to hand to a runtime.
type Pipeline struct {
	log *zap.Logger
}

// NewPipeline builds a pipeline logging through log. A nil log is
// replaced by a no-op logger.
func NewPipeline(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log}
}

// Run transforms cfg in place and returns it with a report. An entity
// whose register declaration fails validation is dropped and its error
// recorded; the rest of the load continues. Duplicates and timing
// adjustments only warn.
func (p *Pipeline) Run(cfg *config.Config) (*config.Config, *Report) {
	r := &Report{}

	// Parse-time stage: coerce scalars and normalize every register
	// declaration.
	for i := range cfg.Modbus {
		hub := &cfg.Modbus[i]
		for _, pl := range hub.Platforms() {
			var drop []int
			for j := range *pl.Entities {
				e := &(*pl.Entities)[j]
				if err := checkEntity(e); err != nil {
					p.log.Error("invalid declaration, entry not loaded",
						zap.String("hub", hub.Name),
						zap.String("platform", pl.Platform),
						zap.String("entity", e.Name),
						zap.Error(err))
					r.Errors = append(r.Errors, err)
					drop = append(drop, j)
				}
			}
			*pl.Entities = prune(*pl.Entities, drop)
			r.Rejected += len(drop)
		}
	}

	// Assembly-time stages, whole tree.
	cfg.Modbus = Timing(cfg.Modbus, p.log)
	cfg.Modbus = DedupeEntities(cfg.Modbus, p.log)
	cfg.Modbus = DedupeHubs(cfg.Modbus, p.log)

	for i := range cfg.Modbus {
		hub := &cfg.Modbus[i]
		for j := range hub.Climates {
			e := &hub.Climates[j]
			if e.HVACMode != nil {
				e.HVACMode.Values = DedupeModeValues(e.HVACMode.Values, p.log)
			}
			if e.FanMode != nil {
				e.FanMode.Values = DedupeModeValues(e.FanMode.Values, p.log)
			}
		}
	}

	for i := range cfg.Modbus {
		r.Hubs++
		for _, pl := range cfg.Modbus[i].Platforms() {
			r.Entities += len(*pl.Entities)
		}
	}
	return cfg, r
}

// checkEntity coerces the entity's numeric fields and validates its
// register declaration, writing the normalized forms back.
func checkEntity(e *config.Entity) error {
	norm, err := Numbers(e.Name, *e)
	if err != nil {
		return err
	}
	*e = norm

	if e.DataType == "" {
		// Platform entry without register semantics.
		return nil
	}
	reg, err := Register(e.Name, e.Register)
	if err != nil {
		return err
	}
	e.Register = reg
	return nil
}
