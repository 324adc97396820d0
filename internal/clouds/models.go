package clouds

// RawResponse is the decoded upstream payload. A nil or empty map means the
// upstream had nothing usable to offer.
type RawResponse map[string]any

// CloudRecord is a single raw element of the upstream "clouds" array.
type CloudRecord map[string]any

// Upstream field names surfaced to callers.
const (
	FieldCloudDescription = "cloud_description"
	FieldCloudName        = "cloud_name"
	FieldGeoLatitude      = "geo_latitude"
	FieldGeoLongitude     = "geo_longitude"
)

// AvailableCloud is the reduced view of a cloud returned by the API.
// Values are copied from upstream untouched; a field missing upstream stays
// nil and is encoded as JSON null.
type AvailableCloud struct {
	CloudDescription any `json:"cloud_description"`
	CloudName        any `json:"cloud_name"`
	GeoLatitude      any `json:"geo_latitude"`
	GeoLongitude     any `json:"geo_longitude"`
}
