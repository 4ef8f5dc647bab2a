package answer

import (
	"math"
	"net/url"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/freelyform/freelyform/model"
	"github.com/freelyform/freelyform/validation"
)

const earthRadiusKm = 6371.01

// ErrBadQuery reports a partial geospatial query: lat, lng and
// distanceKm must be supplied together or not at all.
var ErrBadQuery = errors.New("lat, lng and distanceKm must be provided all together or not at all")

// GeoQuery is the optional location filter of the answer list read.
type GeoQuery struct {
	Ref        orb.Point
	DistanceKm float64

	active bool
}

func (q GeoQuery) Active() bool {
	return q.active
}

// ParseGeoQuery reads lat, lng and distanceKm out of the request query
// string, enforcing the all-or-none contract before any geometry runs.
func ParseGeoQuery(values url.Values) (GeoQuery, error) {
	lat, lng, dist := values.Get("lat"), values.Get("lng"), values.Get("distanceKm")
	if lat == "" && lng == "" && dist == "" {
		return GeoQuery{}, nil
	}
	if lat == "" || lng == "" || dist == "" {
		return GeoQuery{}, ErrBadQuery
	}

	latV, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return GeoQuery{}, ErrBadQuery
	}
	lngV, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return GeoQuery{}, ErrBadQuery
	}
	distV, err := strconv.ParseFloat(dist, 64)
	if err != nil {
		return GeoQuery{}, ErrBadQuery
	}

	return GeoQuery{Ref: orb.Point{lngV, latV}, DistanceKm: distV, active: true}, nil
}

// FilterByLocation keeps the submissions holding at least one
// geolocation answer within q.DistanceKm of q.Ref. The first matching
// leaf includes the whole submission and stops its scan. Leaves are
// recognized by their annotated type, so callers pass annotated
// groups.
func FilterByLocation(groups []model.AnswerGroup, q GeoQuery) []model.AnswerGroup {
	filtered := []model.AnswerGroup{}
	for _, g := range groups {
		if holdsPointNear(g, q) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

func holdsPointNear(g model.AnswerGroup, q GeoQuery) bool {
	for _, sub := range g.Answers {
		for _, question := range sub.Questions {
			if question.Type != model.TypeGeolocation {
				continue
			}
			p, err := validation.ParseLocation(question.Answer)
			if err != nil {
				continue
			}
			if distanceKm(p, q.Ref) <= q.DistanceKm {
				return true
			}
		}
	}
	return false
}

// distanceKm is the haversine great-circle distance between two
// points on a spherical earth.
func distanceKm(a, b orb.Point) float64 {
	lat1 := toRadians(a.Lat())
	lng1 := toRadians(a.Lon())
	lat2 := toRadians(b.Lat())
	lng2 := toRadians(b.Lon())

	deltaLat := lat2 - lat1
	deltaLng := lng2 - lng1

	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
