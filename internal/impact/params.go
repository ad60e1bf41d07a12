package impact

// Target media reported in Input.TargetType.
const (
	TargetLand  = "land"
	TargetOcean = "ocean"
)

// Parameters describes a single impact scenario.
type Parameters struct {
	Diameter   float64 `json:"diameter"`             // meters
	Density    float64 `json:"density"`              // kg/m³
	Velocity   float64 `json:"velocity"`             // km/s
	Angle      float64 `json:"angle"`                // degrees from horizontal
	Latitude   float64 `json:"latitude"`             // [-90, 90]
	Longitude  float64 `json:"longitude"`            // [-180, 180]
	TargetType string  `json:"targetType,omitempty"` // hint only, superseded by resolution
}

// LocationInfo is the resolved description of an impact point.
type LocationInfo struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`
	Country      string  `json:"country"`
	IsOcean      bool    `json:"is_ocean"`
}

// Input echoes the resolved scenario. CompositionDescription is empty for custom compositions.
type Input struct {
	DiameterM              float64 `json:"diameter_m"`
	DensityKgM3            float64 `json:"density_kg_m3"`
	VelocityKmS            float64 `json:"velocity_km_s"`
	AngleDeg               float64 `json:"angle_deg"`
	Composition            string  `json:"composition"`
	CompositionDescription string  `json:"composition_description"`
	TargetType             string  `json:"target_type"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	LocationName           string  `json:"location_name"`
	Country                string  `json:"country"`
}

type Energy struct {
	MassKg         float64 `json:"mass_kg"`
	KineticEnergyJ float64 `json:"kinetic_energy_j"`
	MegatonsTNT    float64 `json:"megatons_tnt"`
}

type Crater struct {
	DiameterM  float64 `json:"diameter_m"`
	DiameterKm float64 `json:"diameter_km"`
	DepthM     float64 `json:"depth_m"`
	VolumeM3   float64 `json:"volume_m3"`
	Comparison string  `json:"comparison"`
}

type Fireball struct {
	RadiusM  float64 `json:"radius_m"`
	RadiusKm float64 `json:"radius_km"`
}

// Blast holds damage radii at 20, 5 and 1 psi overpressure.
type Blast struct {
	TotalDestructionM  float64 `json:"total_destruction_m"`
	TotalDestructionKm float64 `json:"total_destruction_km"`
	SevereDamageM      float64 `json:"severe_damage_m"`
	SevereDamageKm     float64 `json:"severe_damage_km"`
	ModerateDamageM    float64 `json:"moderate_damage_m"`
	ModerateDamageKm   float64 `json:"moderate_damage_km"`
}

type Seismic struct {
	Magnitude float64 `json:"magnitude"`
}

type Thermal struct {
	Flux1KmJM2   float64 `json:"flux_1km_j_m2"`
	Flux10KmJM2  float64 `json:"flux_10km_j_m2"`
	Flux100KmJM2 float64 `json:"flux_100km_j_m2"`
}

// Tsunami holds wave heights in meters at fixed distances from an ocean impact.
type Tsunami struct {
	Height10Km   float64 `json:"height_10km"`
	Height100Km  float64 `json:"height_100km"`
	Height500Km  float64 `json:"height_500km"`
	Height1000Km float64 `json:"height_1000km"`
}

type Comparisons struct {
	HiroshimaEquivalent float64 `json:"hiroshima_equivalent"`
	NagasakiEquivalent  float64 `json:"nagasaki_equivalent"`
}

// Result is the complete set of derived effects for one scenario.
// Tsunami is nil for land targets.
type Result struct {
	Input             Input                  `json:"input"`
	Energy            Energy                 `json:"energy"`
	Crater            Crater                 `json:"crater"`
	Fireball          Fireball               `json:"fireball"`
	Blast             Blast                  `json:"blast"`
	Seismic           Seismic                `json:"seismic"`
	Thermal           Thermal                `json:"thermal"`
	Tsunami           *Tsunami               `json:"tsunami"`
	Comparisons       Comparisons            `json:"comparisons"`
	GlobalCatastrophe bool                   `json:"global_catastrophe"`
	Severity          Severity               `json:"severity"`
	Safety            []SafetyRecommendation `json:"safety"`
	Migration         []MigrationLocation    `json:"migration_locations"`
}
