package geo

import (
	"encoding/json"
	"math"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters computes the great-circle distance between two coordinates in meters.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Point is a single geofence vertex.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Fence is the decoded shape of asistencia.geocerca.coordenadas.
// A circle carries Center+RadiusM; a polygon carries Points (>= 3 vertices).
type Fence struct {
	Center  *Point  `json:"center,omitempty"`
	RadiusM *float64 `json:"radius_m,omitempty"`
	Points  []Point `json:"points,omitempty"`
}

// ParseFence decodes the raw JSONB value of a geofence. Malformed payloads
// yield a nil fence, never an error: the caller treats that as "no fence".
func ParseFence(raw []byte) *Fence {
	if len(raw) == 0 {
		return nil
	}
	var f Fence
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if f.Center != nil && f.RadiusM != nil {
		return &f
	}
	if len(f.Points) >= 3 {
		return &f
	}
	return nil
}

// Evaluate decides whether the coordinate lies inside the fence.
// Returns nil when the fence or either coordinate is absent, or when the
// fence data cannot be evaluated. The boundary of a circle counts as inside.
func Evaluate(fence *Fence, lat, lng *float64) *bool {
	if fence == nil || lat == nil || lng == nil {
		return nil
	}

	if fence.Center != nil && fence.RadiusM != nil {
		d := HaversineMeters(*lat, *lng, fence.Center.Lat, fence.Center.Lng)
		inside := d <= *fence.RadiusM
		return &inside
	}

	if len(fence.Points) >= 3 {
		inside := pointInPolygon(*lat, *lng, fence.Points)
		return &inside
	}

	return nil
}

// pointInPolygon runs a ray-casting test over the ordered vertex list,
// treated as a closed ring (the last-to-first edge is included).
func pointInPolygon(lat, lng float64, points []Point) bool {
	x, y := lng, lat
	n := len(points)
	inside := false
	for i := 0; i < n; i++ {
		j := (i - 1 + n) % n
		xi, yi := points[i].Lng, points[i].Lat
		xj, yj := points[j].Lng, points[j].Lat

		dy := yj - yi
		if dy == 0 {
			// Horizontal edge: tiny epsilon keeps the division defined.
			dy = 1e-12
		}
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/dy+xi {
			inside = !inside
		}
	}
	return inside
}
