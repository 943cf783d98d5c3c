package propstream

import (
	"encoding/json"
	"strconv"
	"strings"
)

// GeoJSONPoint is the object encoding of a geographic position, with
// coordinates ordered [longitude, latitude] per GeoJSON.
type GeoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoPointToLatLng converts a raw geoPoint value to the "lat,lng" string
// encoding the description service expects. A value that is already a
// string is returned as-is. A malformed value yields a malformed-data
// error; callers log it and leave the field untransformed.
func GeoPointToLatLng(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", NewMalformedError("empty geoPoint", nil)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var pt GeoJSONPoint
	if err := json.Unmarshal(raw, &pt); err != nil {
		return "", NewMalformedError("unparseable geoPoint", err)
	}
	if len(pt.Coordinates) != 2 {
		return "", NewMalformedError("geoPoint needs exactly two coordinates", nil)
	}
	lng, lat := pt.Coordinates[0], pt.Coordinates[1]
	return formatCoord(lat) + "," + formatCoord(lng), nil
}

// LatLngToGeoPoint converts a raw geoPoint value to the GeoJSON point
// encoding. A value that is already an object is returned as-is.
func LatLngToGeoPoint(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, NewMalformedError("empty geoPoint", nil)
	}

	var pt GeoJSONPoint
	if err := json.Unmarshal(raw, &pt); err == nil && pt.Type == "Point" {
		return raw, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, NewMalformedError("unparseable geoPoint", err)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, NewMalformedError("coordinate string is not \"lat,lng\"", nil)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, NewMalformedError("unparseable latitude", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, NewMalformedError("unparseable longitude", err)
	}

	out, err := json.Marshal(GeoJSONPoint{Type: "Point", Coordinates: []float64{lng, lat}})
	if err != nil {
		return nil, NewMalformedError("encode geoPoint", err)
	}
	return out, nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
