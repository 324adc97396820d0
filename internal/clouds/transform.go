package clouds

// BuildCloudList maps the upstream "clouds" array into AvailableCloud values,
// preserving upstream order. An empty response, a missing "clouds" key or a
// "clouds" value that is not an array all yield an empty list.
func BuildCloudList(raw RawResponse) []AvailableCloud {
	out := []AvailableCloud{}
	if len(raw) == 0 {
		return out
	}

	items, ok := raw["clouds"].([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		// Non-object elements still occupy a slot, with every field null.
		rec, _ := item.(map[string]any)
		out = append(out, newAvailableCloud(rec))
	}
	return out
}

func newAvailableCloud(rec CloudRecord) AvailableCloud {
	// Lookups on a nil map return nil, which is what we want for absent fields.
	return AvailableCloud{
		CloudDescription: rec[FieldCloudDescription],
		CloudName:        rec[FieldCloudName],
		GeoLatitude:      rec[FieldGeoLatitude],
		GeoLongitude:     rec[FieldGeoLongitude],
	}
}
