package movement

import "fmt"

// Capability classifies how an agent interacts with terrain. It is an
// explicit tag assigned at entity creation, never inferred from the
// entity's concrete type.
type Capability uint8

const (
	Walking Capability = iota
	Flying
	Swimming
	Amphibious
	AllTerrain
)

var capabilityNames = [...]string{
	Walking:    "walking",
	Flying:     "flying",
	Swimming:   "swimming",
	Amphibious: "amphibious",
	AllTerrain: "all_terrain",
}

func (c Capability) String() string {
	if int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return fmt.Sprintf("capability(%d)", uint8(c))
}

// Known reports whether c is one of the defined capabilities.
// Unknown values resolve to Walking semantics everywhere.
func (c Capability) Known() bool {
	return int(c) < len(capabilityNames)
}

// normalize maps unknown capability values to Walking.
func (c Capability) normalize() Capability {
	if !c.Known() {
		return Walking
	}
	return c
}

// ParseCapability resolves a config/map-document name. Unknown names
// fall back to Walking, matching the engine's runtime behavior.
func ParseCapability(name string) Capability {
	for i, n := range capabilityNames {
		if n == name {
			return Capability(i)
		}
	}
	return Walking
}
