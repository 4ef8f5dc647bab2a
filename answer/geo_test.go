package answer

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelyform/freelyform/model"
)

func urlValues(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func TestParseGeoQueryAllAbsent(t *testing.T) {
	q, err := ParseGeoQuery(urlValues())
	require.NoError(t, err)
	assert.False(t, q.Active())
}

func TestParseGeoQueryAllPresent(t *testing.T) {
	q, err := ParseGeoQuery(urlValues("lat", "45.0", "lng", "-73.0", "distanceKm", "10"))
	require.NoError(t, err)
	require.True(t, q.Active())
	assert.Equal(t, 45.0, q.Ref.Lat())
	assert.Equal(t, -73.0, q.Ref.Lon())
	assert.Equal(t, 10.0, q.DistanceKm)
}

func TestParseGeoQueryPartial(t *testing.T) {
	partials := []url.Values{
		urlValues("lat", "45.0"),
		urlValues("lng", "-73.0"),
		urlValues("distanceKm", "10"),
		urlValues("lat", "45.0", "lng", "-73.0"),
		urlValues("lat", "45.0", "distanceKm", "10"),
	}
	for _, vals := range partials {
		_, err := ParseGeoQuery(vals)
		assert.ErrorIsf(t, err, ErrBadQuery, "values=%v", vals)
	}
}

func TestParseGeoQueryMalformed(t *testing.T) {
	_, err := ParseGeoQuery(urlValues("lat", "north", "lng", "-73.0", "distanceKm", "10"))
	assert.ErrorIs(t, err, ErrBadQuery)
}

func TestDistanceKm(t *testing.T) {
	ref := orb.Point{-73.0, 45.0}

	near := distanceKm(orb.Point{-73.01, 45.01}, ref)
	assert.InDelta(t, 1.36, near, 0.1)

	far := distanceKm(orb.Point{-74.0, 46.0}, ref)
	assert.InDelta(t, 135, far, 5)

	assert.Zero(t, distanceKm(ref, ref))
}

func geoSubmission(id, answerJson string) model.AnswerGroup {
	return model.AnswerGroup{
		ID: id,
		Answers: []model.AnswerSubGroup{{
			Group: "G",
			Questions: []model.AnswerQuestion{{
				Question: "Where",
				Type:     model.TypeGeolocation,
				Answer:   json.RawMessage(answerJson),
			}},
		}},
	}
}

func TestFilterByLocation(t *testing.T) {
	q := GeoQuery{Ref: orb.Point{-73.0, 45.0}, DistanceKm: 10, active: true}

	groups := []model.AnswerGroup{
		geoSubmission("near", `{"lat": 45.01, "lng": -73.01}`),
		geoSubmission("far", `{"lat": 46.0, "lng": -74.0}`),
	}

	filtered := FilterByLocation(groups, q)
	require.Len(t, filtered, 1)
	assert.Equal(t, "near", filtered[0].ID)
}

func TestFilterByLocationSkipsNonGeoLeaves(t *testing.T) {
	q := GeoQuery{Ref: orb.Point{-73.0, 45.0}, DistanceKm: 10, active: true}

	g := model.AnswerGroup{
		ID: "texty",
		Answers: []model.AnswerSubGroup{{
			Group: "G",
			Questions: []model.AnswerQuestion{{
				Question: "Name",
				Type:     model.TypeText,
				Answer:   json.RawMessage(`"45.0,-73.0"`),
			}},
		}},
	}
	assert.Empty(t, FilterByLocation([]model.AnswerGroup{g}, q))
}

func TestFilterByLocationIncludesOnceOnFirstMatch(t *testing.T) {
	q := GeoQuery{Ref: orb.Point{-73.0, 45.0}, DistanceKm: 10, active: true}

	g := model.AnswerGroup{
		ID: "multi",
		Answers: []model.AnswerSubGroup{{
			Group: "G",
			Questions: []model.AnswerQuestion{
				{Question: "A", Type: model.TypeGeolocation, Answer: json.RawMessage(`{"lat": 45.0, "lng": -73.0}`)},
				{Question: "B", Type: model.TypeGeolocation, Answer: json.RawMessage(`{"lat": 45.001, "lng": -73.001}`)},
			},
		}},
	}
	filtered := FilterByLocation([]model.AnswerGroup{g}, q)
	assert.Len(t, filtered, 1)
}
