// internal/config/config.go
package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/modbus-preflight/internal/layout"
)

type Config struct {
	Modbus []Hub `yaml:"modbus"`
}

// ---- DEFAULTS ----

// DefaultHub names hubs that declare no name of their own.
const DefaultHub = "modbus_hub"

// DefaultTimeout is the connect/read timeout in seconds.
const DefaultTimeout = 3

// ---- HUB ----

// Connection kinds. Everything except serial keys its identity on
// host and port.
const (
	KindSerial     = "serial"
	KindTCP        = "tcp"
	KindUDP        = "udp"
	KindRTUOverTCP = "rtuovertcp"
)

type Hub struct {
	Name    string `yaml:"name,omitempty"`
	Type    string `yaml:"type"`
	Host    string `yaml:"host,omitempty"`
	Port    Port   `yaml:"port"`
	Timeout int    `yaml:"timeout,omitempty"`

	BinarySensors []Entity `yaml:"binary_sensors,omitempty"`
	Climates      []Entity `yaml:"climates,omitempty"`
	Covers        []Entity `yaml:"covers,omitempty"`
	Fans          []Entity `yaml:"fans,omitempty"`
	Lights        []Entity `yaml:"lights,omitempty"`
	Locks         []Entity `yaml:"locks,omitempty"`
	Sensors       []Entity `yaml:"sensors,omitempty"`
	Switches      []Entity `yaml:"switches,omitempty"`
}

// Serial reports whether the hub talks through a serial device.
func (h *Hub) Serial() bool { return h.Type == KindSerial }

// PlatformList pairs a platform name with its entity list. The pointer
// lets resolvers replace the list in place.
type PlatformList struct {
	Platform string
	Entities *[]Entity
}

// Platforms returns the hub's entity lists in the fixed scan order
// every whole-tree pass uses.
func (h *Hub) Platforms() []PlatformList {
	return []PlatformList{
		{"binary_sensor", &h.BinarySensors},
		{"climate", &h.Climates},
		{"cover", &h.Covers},
		{"fan", &h.Fans},
		{"light", &h.Lights},
		{"lock", &h.Locks},
		{"sensor", &h.Sensors},
		{"switch", &h.Switches},
	}
}

// Port is a connection port: a device path for serial hubs, a numeric
// port otherwise. Numeric scalars are accepted verbatim.
type Port string

func (p *Port) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: port must be a scalar")
	}
	*p = Port(node.Value)
	return nil
}

// ---- ENTITY ----

type Entity struct {
	Name          string `yaml:"name"`
	Address       int    `yaml:"address"`
	InputType     string `yaml:"input_type,omitempty"`
	WriteType     string `yaml:"write_type,omitempty"`
	CommandOn     *int   `yaml:"command_on,omitempty"`
	CommandOff    *int   `yaml:"command_off,omitempty"`
	Slave         *int   `yaml:"slave,omitempty"`
	DeviceAddress *int   `yaml:"device_address,omitempty"`
	ScanInterval  *int   `yaml:"scan_interval,omitempty"` // 0 disables polling

	// Free-form numeric fields. Raw scalars until validation coerces
	// them: int64 or float64 for the first four, int64 for the
	// not-a-number sentinel (hex strings accepted).
	Scale    any `yaml:"scale,omitempty"`
	Offset   any `yaml:"offset,omitempty"`
	MinValue any `yaml:"min_value,omitempty"`
	MaxValue any `yaml:"max_value,omitempty"`
	NaNValue any `yaml:"nan_value,omitempty"`

	Register `yaml:",inline"`

	// Climate sub-registers. These occupy address space of their own.
	TargetTemp *int          `yaml:"target_temp_register,omitempty"`
	HVACMode   *ModeRegister `yaml:"hvac_mode_register,omitempty"`
	FanMode    *ModeRegister `yaml:"fan_mode_register,omitempty"`
}

// DeviceIndex resolves the sub-device selector: slave when non-zero,
// else device_address when present, else 0.
func (e *Entity) DeviceIndex() int {
	if e.Slave != nil && *e.Slave != 0 {
		return *e.Slave
	}
	if e.DeviceAddress != nil {
		return *e.DeviceAddress
	}
	return 0
}

// ---- REGISTER DECLARATION ----

// Register describes how one register's words decode. Validation
// returns a normalized copy; declarations are never edited in place.
type Register struct {
	DataType     layout.DataType `yaml:"data_type,omitempty"`
	Count        *int            `yaml:"count,omitempty"`
	Structure    string          `yaml:"structure,omitempty"`
	SlaveCount   *int            `yaml:"slave_count,omitempty"`
	VirtualCount *int            `yaml:"virtual_count,omitempty"` // legacy spelling of slave_count
	Swap         layout.SwapMode `yaml:"swap,omitempty"`
}

// ---- MODE REGISTERS ----

// ModeRegister maps named modes onto the values of one register.
type ModeRegister struct {
	Address int        `yaml:"address"`
	Values  ModeValues `yaml:"values"`
}

// ModeValue is one label-to-register-value pair.
type ModeValue struct {
	Label string
	Value int
}

// ModeValues preserves the document order of a label-to-value mapping.
// Order matters: on duplicate values the first label wins.
type ModeValues []ModeValue

func (m *ModeValues) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("config: mode values must be a mapping of label to number")
	}
	out := make(ModeValues, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var mv ModeValue
		if err := node.Content[i].Decode(&mv.Label); err != nil {
			return fmt.Errorf("config: mode label: %w", err)
		}
		if err := node.Content[i+1].Decode(&mv.Value); err != nil {
			return fmt.Errorf("config: mode value for %q: %w", mv.Label, err)
		}
		out = append(out, mv)
	}
	*m = out
	return nil
}

func (m ModeValues) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, mv := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mv.Label},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(mv.Value)},
		)
	}
	return node, nil
}
