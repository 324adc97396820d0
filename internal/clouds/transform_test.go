package clouds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) RawResponse {
	t.Helper()
	var raw RawResponse
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestBuildCloudListCopiesFieldsInOrder(t *testing.T) {
	raw := decodeRaw(t, `{"clouds":[
		{"cloud_description":"Europe, Ireland - Amazon Web Services: Ireland","cloud_name":"aws-eu-west-1","geo_latitude":53.0,"geo_longitude":-8.0,"geo_region":"europe","provider":"aws"},
		{"cloud_description":"Asia, Japan - Google Cloud: Tokyo","cloud_name":"google-asia-northeast1","geo_latitude":35.6,"geo_longitude":139.7}
	]}`)

	list := BuildCloudList(raw)
	require.Len(t, list, 2)

	assert.Equal(t, AvailableCloud{
		CloudDescription: "Europe, Ireland - Amazon Web Services: Ireland",
		CloudName:        "aws-eu-west-1",
		GeoLatitude:      53.0,
		GeoLongitude:     -8.0,
	}, list[0])
	assert.Equal(t, "google-asia-northeast1", list[1].CloudName)
}

func TestBuildCloudListMissingFieldsAreNull(t *testing.T) {
	raw := decodeRaw(t, `{"clouds":[{"cloud_name":"do-ams"},{}]}`)

	list := BuildCloudList(raw)
	require.Len(t, list, 2)
	assert.Equal(t, AvailableCloud{CloudName: "do-ams"}, list[0])
	assert.Equal(t, AvailableCloud{}, list[1])

	b, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"cloud_description":null,"cloud_name":"do-ams","geo_latitude":null,"geo_longitude":null}`, string(b))
}

func TestBuildCloudListPassesValuesThroughUnchecked(t *testing.T) {
	raw := decodeRaw(t, `{"clouds":[{"cloud_name":7,"geo_latitude":"north"}, "bogus"]}`)

	list := BuildCloudList(raw)
	require.Len(t, list, 2)
	assert.Equal(t, float64(7), list[0].CloudName)
	assert.Equal(t, "north", list[0].GeoLatitude)
	assert.Equal(t, AvailableCloud{}, list[1])
}

func TestBuildCloudListEmptyInputs(t *testing.T) {
	cases := map[string]RawResponse{
		"nil":        nil,
		"empty":      {},
		"no clouds":  {"errors": []any{}},
		"not a list": {"clouds": "nope"},
		"empty list": {"clouds": []any{}},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			list := BuildCloudList(raw)
			require.NotNil(t, list)
			require.Empty(t, list)
		})
	}
}

func TestBuildCloudListDoesNotDeduplicate(t *testing.T) {
	raw := decodeRaw(t, `{"clouds":[{"cloud_name":"b"},{"cloud_name":"a"},{"cloud_name":"b"}]}`)

	list := BuildCloudList(raw)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].CloudName)
	assert.Equal(t, "a", list[1].CloudName)
	assert.Equal(t, "b", list[2].CloudName)
}
