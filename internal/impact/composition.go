package impact

import "math"

// CompositionCustom labels densities that match no table entry.
const CompositionCustom = "custom"

// nearestMatchTolerance is the relative density error accepted when mapping a
// non-canonical density to a table entry.
const nearestMatchTolerance = 0.10

// Composition is a canonical impactor material.
type Composition struct {
	Name        string  `json:"name"`
	Density     float64 `json:"density"`
	Description string  `json:"description"`
}

// Compositions is ordered by ascending density.
var Compositions = []Composition{
	{Name: "ice", Density: 917, Description: "Icy composition (comets, volatile-rich)"},
	{Name: "carbonaceous", Density: 2000, Description: "Carbon-rich composition (primitive material)"},
	{Name: "stone", Density: 3000, Description: "Rocky composition (most common asteroids)"},
	{Name: "stony_iron", Density: 5000, Description: "Mixed rock and metal composition"},
	{Name: "iron", Density: 7800, Description: "Metallic composition (dense, penetrates deeper)"},
}

// CompositionFor maps a bulk density to a composition label. Canonical
// densities match exactly; other values take the nearest entry within 10%,
// and anything else is "custom".
func CompositionFor(density float64) string {
	best := CompositionCustom
	bestErr := math.Inf(1)
	for _, c := range Compositions {
		if density == c.Density {
			return c.Name
		}
		if e := math.Abs(density-c.Density) / c.Density; e < bestErr {
			bestErr = e
			best = c.Name
		}
	}
	if bestErr <= nearestMatchTolerance {
		return best
	}
	return CompositionCustom
}

// DensityOf returns the density for a composition name, defaulting to stone.
func DensityOf(name string) float64 {
	if c, ok := lookupComposition(name); ok {
		return c.Density
	}
	return 3000
}

// DescribeComposition returns a human-readable description of a composition.
func DescribeComposition(name string) string {
	if c, ok := lookupComposition(name); ok {
		return c.Description
	}
	return "Rocky composition"
}

func lookupComposition(name string) (Composition, bool) {
	for _, c := range Compositions {
		if c.Name == name {
			return c, true
		}
	}
	return Composition{}, false
}
