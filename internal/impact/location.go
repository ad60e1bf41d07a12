package impact

import (
	"fmt"
	"math"
)

const (
	// oceanThresholdDeg is the planar distance from the nearest city beyond
	// which a point is treated as open water.
	oceanThresholdDeg = 20.0

	// kmPerDegree converts planar degree distances to approximate kilometers.
	kmPerDegree = 111.0

	// cityRadiusKm is the distance within which a point takes the bare city name.
	cityRadiusKm = 50.0

	openOcean = "Open Ocean"
)

// City is a named reference point on land.
type City struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Basin is an ocean region approximated by a centroid and an angular radius.
type Basin struct {
	Name      string
	Lat       float64
	Lon       float64
	RadiusDeg float64
}

// Cities is the reference set used to classify land impacts.
var Cities = []City{
	{Name: "New York", Country: "USA", Lat: 40.7128, Lon: -74.006},
	{Name: "London", Country: "UK", Lat: 51.5074, Lon: -0.1278},
	{Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503},
	{Name: "Paris", Country: "France", Lat: 48.8566, Lon: 2.3522},
	{Name: "Sydney", Country: "Australia", Lat: -33.8688, Lon: 151.2093},
	{Name: "Mumbai", Country: "India", Lat: 19.076, Lon: 72.8777},
	{Name: "São Paulo", Country: "Brazil", Lat: -23.5505, Lon: -46.6333},
	{Name: "Cairo", Country: "Egypt", Lat: 30.0444, Lon: 31.2357},
	{Name: "Moscow", Country: "Russia", Lat: 55.7558, Lon: 37.6173},
	{Name: "Beijing", Country: "China", Lat: 39.9042, Lon: 116.4074},
	{Name: "Los Angeles", Country: "USA", Lat: 34.0522, Lon: -118.2437},
	{Name: "Mexico City", Country: "Mexico", Lat: 19.4326, Lon: -99.1332},
	{Name: "Lagos", Country: "Nigeria", Lat: 6.5244, Lon: 3.3792},
	{Name: "Istanbul", Country: "Turkey", Lat: 41.0082, Lon: 28.9784},
	{Name: "Buenos Aires", Country: "Argentina", Lat: -34.6037, Lon: -58.3816},
}

// Basins is scanned in order; the first basin containing the point wins.
var Basins = []Basin{
	{Name: "Pacific Ocean", Lat: 0, Lon: -140, RadiusDeg: 80},
	{Name: "Atlantic Ocean", Lat: 0, Lon: -30, RadiusDeg: 50},
	{Name: "Indian Ocean", Lat: -20, Lon: 80, RadiusDeg: 40},
	{Name: "Arctic Ocean", Lat: 80, Lon: 0, RadiusDeg: 30},
	{Name: "Southern Ocean", Lat: -60, Lon: 0, RadiusDeg: 30},
}

// Resolver classifies a coordinate as land or ocean and names it.
type Resolver interface {
	Resolve(lat, lon float64) LocationInfo
}

// ReferenceResolver resolves points against fixed city and basin tables.
// An empty (nil or zero-length) table falls back to [Cities] or [Basins].
type ReferenceResolver struct {
	Cities []City
	Basins []Basin
}

// Resolve never fails and always returns a non-empty LocationName.
func (r ReferenceResolver) Resolve(lat, lon float64) LocationInfo {
	cities := r.Cities
	if len(cities) == 0 {
		cities = Cities
	}
	basins := r.Basins
	if len(basins) == 0 {
		basins = Basins
	}

	info := LocationInfo{Latitude: lat, Longitude: lon}

	nearest, minDist := nearestCity(cities, lat, lon)

	// NaN distances fail every comparison and fall through to the ocean branch.
	if !(minDist <= oceanThresholdDeg) {
		info.IsOcean = true
		info.LocationName = basinName(basins, lat, lon)
		return info
	}

	info.Country = nearest.Country
	distanceKm := minDist * kmPerDegree
	if distanceKm < cityRadiusKm {
		info.LocationName = nearest.Name
		return info
	}

	info.LocationName = fmt.Sprintf("%d km %s of %s",
		int64(math.Round(distanceKm)), compassDirection(lat, lon, nearest.Lat, nearest.Lon), nearest.Name)
	return info
}

// Resolve classifies a point against the built-in reference tables.
func Resolve(lat, lon float64) LocationInfo {
	return ReferenceResolver{}.Resolve(lat, lon)
}

func nearestCity(cities []City, lat, lon float64) (City, float64) {
	nearest := cities[0]
	minDist := math.MaxFloat64
	for _, c := range cities {
		if d := planarDistance(lat, lon, c.Lat, c.Lon); d < minDist {
			minDist = d
			nearest = c
		}
	}
	if minDist == math.MaxFloat64 {
		return nearest, math.NaN()
	}
	return nearest, minDist
}

func basinName(basins []Basin, lat, lon float64) string {
	for _, b := range basins {
		if planarDistance(lat, lon, b.Lat, b.Lon) < b.RadiusDeg {
			return b.Name
		}
	}
	return openOcean
}

// planarDistance is the Euclidean distance between two points in degree space.
func planarDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat1-lat2, lon1-lon2)
}

// compassDirection buckets the bearing from (lat1, lon1) towards (lat2, lon2)
// into one of eight 45° sectors. Labels are built from the impact point
// towards the nearest city, so a point north of a city reads "south of" it.
func compassDirection(lat1, lon1, lat2, lon2 float64) string {
	angle := math.Atan2(lon2-lon1, lat2-lat1) * 180 / math.Pi

	switch {
	case angle >= -22.5 && angle < 22.5:
		return "north"
	case angle >= 22.5 && angle < 67.5:
		return "northeast"
	case angle >= 67.5 && angle < 112.5:
		return "east"
	case angle >= 112.5 && angle < 157.5:
		return "southeast"
	case angle >= 157.5 || angle < -157.5:
		return "south"
	case angle >= -157.5 && angle < -112.5:
		return "southwest"
	case angle >= -112.5 && angle < -67.5:
		return "west"
	default:
		return "northwest"
	}
}
