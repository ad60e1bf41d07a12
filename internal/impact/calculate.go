package impact

import "math"

const (
	// JoulesPerMegaton is the TNT-equivalent conversion constant.
	JoulesPerMegaton = 4.184e15

	// HiroshimaMegatons and NagasakiMegatons are the reference yields used
	// in Comparisons.
	HiroshimaMegatons = 0.015
	NagasakiMegatons  = 0.021

	// GlobalCatastropheMegatons is the yield at and above which an impact
	// is flagged as a global catastrophe.
	GlobalCatastropheMegatons = 1e6
)

// Calculator derives impact effects, consulting a Resolver once per call to
// determine the target medium.
type Calculator struct {
	resolver Resolver
}

// NewCalculator creates a Calculator. A nil resolver selects ReferenceResolver.
func NewCalculator(resolver Resolver) *Calculator {
	if resolver == nil {
		resolver = ReferenceResolver{}
	}
	return &Calculator{resolver: resolver}
}

var defaultCalculator = NewCalculator(nil)

// Calculate derives the effects of p using the built-in reference tables.
func Calculate(p Parameters) Result {
	return defaultCalculator.Calculate(p)
}

// Calculate derives the full effects record for p. It never fails; inputs
// outside the documented domain yield NaN or ±Inf fields.
func (c *Calculator) Calculate(p Parameters) Result {
	angleRad := p.Angle * math.Pi / 180

	massKg, energyJ := kineticEnergy(p)
	megatons := energyJ / JoulesPerMegaton

	craterDiameterM := 1.8 * math.Pow(energyJ, 0.26) * math.Pow(math.Sin(angleRad), 1.0/3.0) / math.Pow(p.Density, 0.33)
	craterDiameterKm := craterDiameterM / 1000
	craterDepthKm := craterDiameterKm * 0.25
	craterVolumeKm3 := (math.Pi / 3) * math.Pow(craterDiameterKm/2, 2) * craterDepthKm

	fireballKm := 0.28 * math.Pow(megatons, 0.4)

	blast20Km := 0.28 * math.Pow(megatons, 0.33)
	blast5Km := 0.54 * math.Pow(megatons, 0.4)
	blast1Km := 1.0 * math.Pow(megatons, 0.47)

	composition := CompositionFor(p.Density)
	loc := c.resolver.Resolve(p.Latitude, p.Longitude)
	target := TargetLand
	if loc.IsOcean {
		target = TargetOcean
	}

	res := Result{
		Input: Input{
			DiameterM:              p.Diameter,
			DensityKgM3:            p.Density,
			VelocityKmS:            p.Velocity,
			AngleDeg:               p.Angle,
			Composition:            composition,
			CompositionDescription: describeIfKnown(composition),
			TargetType:             target,
			Latitude:               p.Latitude,
			Longitude:              p.Longitude,
			LocationName:           loc.LocationName,
			Country:                loc.Country,
		},
		Energy: Energy{
			MassKg:         massKg,
			KineticEnergyJ: energyJ,
			MegatonsTNT:    megatons,
		},
		Crater: Crater{
			DiameterM:  craterDiameterM,
			DiameterKm: craterDiameterKm,
			DepthM:     craterDepthKm * 1000,
			VolumeM3:   craterVolumeKm3 * 1e9,
			Comparison: CompareCrater(craterDiameterKm),
		},
		Fireball: Fireball{
			RadiusM:  fireballKm * 1000,
			RadiusKm: fireballKm,
		},
		Blast: Blast{
			TotalDestructionM:  blast20Km * 1000,
			TotalDestructionKm: blast20Km,
			SevereDamageM:      blast5Km * 1000,
			SevereDamageKm:     blast5Km,
			ModerateDamageM:    blast1Km * 1000,
			ModerateDamageKm:   blast1Km,
		},
		Seismic: Seismic{
			Magnitude: (2.0/3.0)*math.Log10(energyJ) - 4.8,
		},
		Thermal: Thermal{
			Flux1KmJM2:   thermalFlux(megatons, 1),
			Flux10KmJM2:  thermalFlux(megatons, 10),
			Flux100KmJM2: thermalFlux(megatons, 100),
		},
		Comparisons: Comparisons{
			HiroshimaEquivalent: megatons / HiroshimaMegatons,
			NagasakiEquivalent:  megatons / NagasakiMegatons,
		},
		GlobalCatastrophe: megatons >= GlobalCatastropheMegatons,
		Severity:          ClassifySeverity(megatons),
		Safety:            SafetyRecommendations(blast1Km),
		Migration:         MigrationLocations(),
	}

	if loc.IsOcean {
		res.Tsunami = &Tsunami{
			Height10Km:   tsunamiHeight(megatons, 10),
			Height100Km:  tsunamiHeight(megatons, 100),
			Height500Km:  tsunamiHeight(megatons, 500),
			Height1000Km: tsunamiHeight(megatons, 1000),
		}
	}

	return res
}

// kineticEnergy returns the impactor mass in kg and its kinetic energy in J,
// treating it as a sphere of the given diameter and density.
func kineticEnergy(p Parameters) (massKg, energyJ float64) {
	radiusM := p.Diameter / 2
	velocityMS := p.Velocity * 1000
	massKg = (4.0 / 3.0) * math.Pi * math.Pow(radiusM, 3) * p.Density
	return massKg, 0.5 * massKg * velocityMS * velocityMS
}

func describeIfKnown(composition string) string {
	if composition == CompositionCustom {
		return ""
	}
	return DescribeComposition(composition)
}

// thermalFlux is the inverse-square radiant exposure in J/m² at distanceKm.
func thermalFlux(megatons, distanceKm float64) float64 {
	return 1e8 * math.Sqrt(megatons) / (distanceKm * distanceKm)
}

// tsunamiHeight is the wave height in meters at distanceKm from an ocean impact.
func tsunamiHeight(megatons, distanceKm float64) float64 {
	return 10 * math.Sqrt(megatons) / math.Sqrt(distanceKm)
}
