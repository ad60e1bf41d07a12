package impact

// Severity is a coarse, user-facing classification of an impact's yield.
type Severity struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// ClassifySeverity maps a TNT-equivalent yield to a severity level:
//
//	≥1e6 Mt  Extinction Event
//	≥1e5 Mt  Continental Devastation
//	≥1e4 Mt  Regional Catastrophe
//	≥1e3 Mt  Major Impact
//	≥1 Mt    Significant Impact
//	<1 Mt    Minor Impact
func ClassifySeverity(megatons float64) Severity {
	switch {
	case megatons >= 1e6:
		return Severity{Level: "Extinction Event", Description: "Global catastrophe, mass extinction"}
	case megatons >= 1e5:
		return Severity{Level: "Continental Devastation", Description: "Continent-wide destruction, climate effects"}
	case megatons >= 1e4:
		return Severity{Level: "Regional Catastrophe", Description: "Regional destruction, significant casualties"}
	case megatons >= 1e3:
		return Severity{Level: "Major Impact", Description: "City-scale destruction"}
	case megatons >= 1:
		return Severity{Level: "Significant Impact", Description: "Local destruction, casualties likely"}
	default:
		return Severity{Level: "Minor Impact", Description: "Limited damage, mostly atmospheric"}
	}
}

// CompareCrater relates a crater diameter to well-known terrestrial craters.
func CompareCrater(diameterKm float64) string {
	switch {
	case diameterKm >= 300:
		return "Larger than Chicxulub crater (dinosaur extinction)"
	case diameterKm >= 100:
		return "Similar to Vredefort crater (South Africa)"
	case diameterKm >= 50:
		return "Similar to Manicouagan crater (Canada)"
	case diameterKm >= 10:
		return "Similar to Barringer crater (Arizona)"
	case diameterKm >= 1:
		return "Larger than most recent impact craters"
	default:
		return "Small crater, similar to meteor impacts"
	}
}

// Priority levels for safety recommendations.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// SafetyRecommendation is the advised action within a given distance of impact.
type SafetyRecommendation struct {
	DistanceKm float64 `json:"distance_km"`
	Action     string  `json:"action"`
	Timeframe  string  `json:"timeframe"`
	Priority   string  `json:"priority"`
}

// SafetyRecommendations returns four concentric zones scaled from the
// moderate (1 psi) blast radius, innermost first.
func SafetyRecommendations(blastRadiusKm float64) []SafetyRecommendation {
	return []SafetyRecommendation{
		{
			DistanceKm: blastRadiusKm * 0.3,
			Action:     "Immediate evacuation required - unsurvivable zone",
			Timeframe:  "Evacuate weeks in advance if possible",
			Priority:   PriorityCritical,
		},
		{
			DistanceKm: blastRadiusKm * 0.6,
			Action:     "Seek underground shelter, evacuate if time permits",
			Timeframe:  "Evacuate days in advance",
			Priority:   PriorityCritical,
		},
		{
			DistanceKm: blastRadiusKm,
			Action:     "Take shelter in reinforced buildings, away from windows",
			Timeframe:  "Shelter in place hours before impact",
			Priority:   PriorityHigh,
		},
		{
			DistanceKm: blastRadiusKm * 2,
			Action:     "Stay indoors, protect from flying debris and glass",
			Timeframe:  "Shelter 30 minutes before impact",
			Priority:   PriorityMedium,
		},
	}
}

// MigrationLocation is a general category of refuge from an impact.
type MigrationLocation struct {
	Name       string  `json:"name"`
	Reason     string  `json:"reason"`
	DistanceKm float64 `json:"distance_km"`
}

// MigrationLocations lists generic refuges. The list does not depend on the
// impact point.
func MigrationLocations() []MigrationLocation {
	return []MigrationLocation{
		{Name: "Underground bunkers (if available)", Reason: "Best protection from blast, heat, and radiation", DistanceKm: 0},
		{Name: "Opposite hemisphere", Reason: "Maximum distance from impact site", DistanceKm: 12000},
		{Name: "Mountain ranges (far from impact)", Reason: "Natural barriers against blast waves", DistanceKm: 5000},
		{Name: "Inland areas (if ocean impact)", Reason: "Protection from tsunamis", DistanceKm: 1000},
	}
}
