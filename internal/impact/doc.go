// Package impact computes the physical consequences of an asteroid striking
// the Earth using simplified scaling laws suitable for education.
//
// # Inputs
//
// An impact is described by [Parameters]: object diameter (m), bulk density
// (kg/m³), atmosphere-relative velocity (km/s), entry angle measured from the
// horizontal (degrees), and the target latitude/longitude. The optional
// TargetType hint is always overwritten by the resolved medium.
//
// # Location resolution
//
// [ReferenceResolver] classifies a point against a fixed table of fifteen
// major cities and five ocean basins. Distances are planar Euclidean distances
// in degree space, not great-circle distances:
//
//	d = sqrt(Δlat² + Δlon²)
//
// A point farther than 20° from every city is oceanic; it is labelled with the
// first basin whose centroid lies within the basin radius, or "Open Ocean".
// Otherwise it is land: within 50 km (1° ≈ 111 km) of a city it takes the
// city name, beyond that a relative label such as "222 km north of New York".
// The thresholds were tuned against the planar metric; switching to geodesic
// distance moves every classification boundary.
//
// No coastline data is consulted, so "ocean" means "far from a listed city".
//
// # Effects
//
// [Calculate] derives, in a single closed-form pass:
//
//	mass          (4/3)πr³ · ρ
//	energy        ½ m v²                       (v in m/s)
//	yield         E / 4.184e15                 (megatons TNT)
//	crater        1.8 · E^0.26 · sin(θ)^(1/3) / ρ^0.33   (m), depth 25%
//	fireball      0.28 · Y^0.4                 (km)
//	blast 20 psi  0.28 · Y^0.33                (km)
//	blast 5 psi   0.54 · Y^0.4                 (km)
//	blast 1 psi   1.0  · Y^0.47                (km)
//	seismic       (2/3) · log10(E) − 4.8
//	thermal       1e8 · Y^0.5 / d²             (J/m², d in km)
//	tsunami       10 · Y^0.5 / d^0.5           (m, ocean targets only)
//
// Yields are compared with Hiroshima (0.015 Mt) and Nagasaki (0.021 Mt), and
// an impact of one million megatons or more is flagged as a global
// catastrophe.
//
// # Domain
//
// [Calculate] is total: out-of-range inputs propagate NaN or ±Inf through the
// formulas instead of failing. Callers that need a strict contract run
// [Validate] first, which reports the offending field as an
// [*InvalidParameterError].
//
// All functions in this package are pure and safe for concurrent use.
package impact
