package impact

import "math"

// ApplyTrajectoryOffset shifts an aim point by a deterministic offset derived
// from the entry angle, velocity and diameter. Shallow, fast, large impactors
// travel farther from the aim point. The seed is a trigonometric hash, not a
// physical model; it exists so that impact points vary visibly as the
// parameters change while staying reproducible.
//
// Latitude is clamped to [-90, 90]; longitude is wrapped into [-180, 180].
func ApplyTrajectoryOffset(lat, lon, angle, velocity, diameter float64) (float64, float64) {
	angleRad := angle * math.Pi / 180
	horizontal := math.Cos(angleRad) * (velocity / 50) * (diameter / 100)

	seed := math.Mod(angle*velocity*diameter, 360)
	newLat := lat + math.Sin(seed)*horizontal*10
	newLon := lon + math.Cos(seed)*horizontal*10

	newLat = math.Max(-90, math.Min(90, newLat))
	return newLat, wrapLongitude(newLon)
}

func wrapLongitude(lon float64) float64 {
	if math.IsInf(lon, 0) || math.IsNaN(lon) {
		return lon
	}
	if lon > 180 {
		lon -= 360 * math.Ceil((lon-180)/360)
	}
	if lon < -180 {
		lon += 360 * math.Ceil((-180-lon)/360)
	}
	return lon
}
