// Package classification maps free-form part text onto the fixed HVAC
// taxonomy and estimates standard labor per category. Both tables are
// immutable configuration: built once, passed explicitly, never mutated.
package classification

import "strings"

// Category is one entry of the taxonomy, with the keyword substrings that
// claim a piece of text for it and its folder path in the downstream tool.
type Category struct {
	Name     string
	Display  string
	Keywords []string
	Folder1  string
	Folder2  string
	Folder3  string
}

// Taxonomy is an ordered category list. Order is load-bearing: keywords
// overlap across categories ("scroll compressor" mentions both a compressor
// and a motor family) and the first match in declared order wins, so the
// slice must never be reordered or turned into a map.
type Taxonomy struct {
	categories []Category
}

// DefaultOther is the catch-all category for text no keyword claims.
const DefaultOther = "other"

// NewDefaultTaxonomy returns the standard HVAC taxonomy in its documented
// priority order.
func NewDefaultTaxonomy() *Taxonomy {
	return &Taxonomy{categories: []Category{
		{
			Name:     "compressor",
			Display:  "Compressor",
			Keywords: []string{"compressor", "scroll", "copeland", "reciprocating", "condensing unit"},
			Folder1:  "HVAC Parts",
			Folder2:  "Compressors",
		},
		{
			Name:     "refrigerant",
			Display:  "Refrigerant",
			Keywords: []string{"refrigerant", "r-410", "r410", "r-22", "r22", "r-454", "freon", "puron"},
			Folder1:  "HVAC Parts",
			Folder2:  "Refrigerant",
		},
		{
			Name:     "motor",
			Display:  "Motor",
			Keywords: []string{"motor", "ecm", "psc", "condenser fan", "blower motor"},
			Folder1:  "HVAC Parts",
			Folder2:  "Motors",
		},
		{
			Name:     "capacitor",
			Display:  "Capacitor",
			Keywords: []string{"capacitor", "mfd", "uf ", "dual run", "start cap"},
			Folder1:  "HVAC Parts",
			Folder2:  "Capacitors",
		},
		{
			Name:     "contactor",
			Display:  "Contactor",
			Keywords: []string{"contactor", "relay", "pole 24v"},
			Folder1:  "HVAC Parts",
			Folder2:  "Contactors & Relays",
		},
		{
			Name:     "thermostat",
			Display:  "Thermostat",
			Keywords: []string{"thermostat", "t-stat", "tstat", "honeywell th", "ecobee", "nest"},
			Folder1:  "HVAC Parts",
			Folder2:  "Thermostats",
		},
		{
			Name:     "coil",
			Display:  "Coil",
			Keywords: []string{"coil", "evaporator", "condenser coil", "a-coil"},
			Folder1:  "HVAC Parts",
			Folder2:  "Coils",
		},
		{
			Name:     "blower",
			Display:  "Blower",
			Keywords: []string{"blower", "wheel", "squirrel cage", "inducer"},
			Folder1:  "HVAC Parts",
			Folder2:  "Blowers",
		},
		{
			Name:     "ignitor",
			Display:  "Ignitor",
			Keywords: []string{"ignitor", "igniter", "hot surface", "flame sensor", "pilot"},
			Folder1:  "HVAC Parts",
			Folder2:  "Ignition",
		},
		{
			Name:     "board",
			Display:  "Control Board",
			Keywords: []string{"control board", "circuit board", "defrost board", "fan timer"},
			Folder1:  "HVAC Parts",
			Folder2:  "Control Boards",
		},
		{
			Name:     "valve",
			Display:  "Valve",
			Keywords: []string{"valve", "txv", "expansion", "reversing", "gas valve"},
			Folder1:  "HVAC Parts",
			Folder2:  "Valves",
		},
		{
			Name:     "filter",
			Display:  "Filter",
			Keywords: []string{"filter", "merv", "media", "filter drier"},
			Folder1:  "HVAC Parts",
			Folder2:  "Filters",
		},
		{
			Name:     "heat_exchanger",
			Display:  "Heat Exchanger",
			Keywords: []string{"heat exchanger", "furnace cell"},
			Folder1:  "HVAC Parts",
			Folder2:  "Heat Exchangers",
		},
	}}
}

// Categorize returns the name of the first category, in declared order, with
// any keyword appearing as a substring of the lower-cased input. Text no
// category claims resolves to "other".
func (t *Taxonomy) Categorize(text string) string {
	lowered := strings.ToLower(text)
	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				return cat.Name
			}
		}
	}
	return DefaultOther
}

// Lookup returns the category metadata by name. The boolean is false for
// unknown names, including "other".
func (t *Taxonomy) Lookup(name string) (Category, bool) {
	for _, cat := range t.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Folders returns the folder path for a category name. "other" and unknown
// categories land in the general parts folder.
func (t *Taxonomy) Folders(name string) (string, string, string) {
	if cat, ok := t.Lookup(name); ok {
		return cat.Folder1, cat.Folder2, cat.Folder3
	}
	return "HVAC Parts", "General", ""
}

// DisplayName returns the human-readable label for a category name.
func (t *Taxonomy) DisplayName(name string) string {
	if cat, ok := t.Lookup(name); ok {
		return cat.Display
	}
	return "Part"
}

// Categories exposes the declared order, for documentation endpoints and
// tests.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}
