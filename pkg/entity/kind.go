package entity

import "fmt"

// Blueprint prototype names of the supported variants.
const (
	NameTransportBelt    = "transport-belt"
	NameUndergroundBelt  = "underground-belt"
	NameFilterInserter   = "filter-inserter"
	NameStoneWall        = "stone-wall"
	NameElectricFurnace  = "electric-furnace"
	NameChemicalPlant    = "chemical-plant"
	NameSplitter         = "splitter"
	nameAssemblingPrefix = "assembling-machine-"
)

// Kind is the variant part of an [Entity]. The set of implementations is
// closed: only the types in this package satisfy it.
type Kind interface {
	// Name returns the blueprint prototype name, e.g. "transport-belt".
	Name() string
	isKind()
}

type TransportBelt struct{}

// UndergroundBelt is one end of an underground pair. Type is "input" or
// "output".
type UndergroundBelt struct {
	Type string `json:"type,omitempty"`
}

// Filter is a single filter slot of a filter inserter.
type Filter struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type FilterInserter struct {
	Filters []Filter `json:"filters,omitempty"`
}

// Wall is the only blocking variant.
type Wall struct{}

// AssemblingMachine covers all machine tiers; Tier is the numeric suffix of
// the prototype name.
type AssemblingMachine struct {
	Tier   int    `json:"-"`
	Recipe string `json:"recipe,omitempty"`
}

type ElectricFurnace struct{}

type ChemicalPlant struct {
	Recipe string `json:"recipe,omitempty"`
}

// Splitter has no built-in footprint. Analyses fail on it unless a
// footprint rule is configured.
type Splitter struct {
	Filter         string `json:"filter,omitempty"`
	InputPriority  string `json:"input_priority,omitempty"`
	OutputPriority string `json:"output_priority,omitempty"`
}

// Unknown is any prototype this package does not model. It is non-blocking
// and, like Splitter, needs a configured footprint rule.
type Unknown struct {
	Prototype string
}

func (TransportBelt) Name() string   { return NameTransportBelt }
func (UndergroundBelt) Name() string { return NameUndergroundBelt }
func (FilterInserter) Name() string  { return NameFilterInserter }
func (Wall) Name() string            { return NameStoneWall }
func (ElectricFurnace) Name() string { return NameElectricFurnace }
func (ChemicalPlant) Name() string   { return NameChemicalPlant }
func (Splitter) Name() string        { return NameSplitter }
func (u Unknown) Name() string       { return u.Prototype }

func (m AssemblingMachine) Name() string {
	tier := m.Tier
	if tier == 0 {
		tier = 1
	}
	return fmt.Sprintf("%s%d", nameAssemblingPrefix, tier)
}

func (TransportBelt) isKind()     {}
func (UndergroundBelt) isKind()   {}
func (FilterInserter) isKind()    {}
func (Wall) isKind()              {}
func (AssemblingMachine) isKind() {}
func (ElectricFurnace) isKind()   {}
func (ChemicalPlant) isKind()     {}
func (Splitter) isKind()          {}
func (Unknown) isKind()           {}

// ParseAssemblingTier extracts the tier from an "assembling-machine-N" name.
func ParseAssemblingTier(name string) (int, bool) {
	var tier int
	if _, err := fmt.Sscanf(name, nameAssemblingPrefix+"%d", &tier); err != nil || tier < 1 {
		return 0, false
	}
	if name != fmt.Sprintf("%s%d", nameAssemblingPrefix, tier) {
		return 0, false
	}
	return tier, true
}

// IsBeltlike reports whether k moves items along belts.
func IsBeltlike(k Kind) bool {
	switch k.(type) {
	case TransportBelt, UndergroundBelt, Splitter:
		return true
	}
	return false
}
