package geo

import "math"

// EarthRadiusKM is Earth's radius in kilometers for Haversine calculation.
const EarthRadiusKM = 6371.0088

// ValidLatLng reports whether the coordinates fall in the valid
// latitude/longitude ranges.
func ValidLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// HaversineKM calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}
