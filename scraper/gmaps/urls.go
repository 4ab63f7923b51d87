package gmaps

import (
	"fmt"
	"net/url"
	"strconv"
)

const mapsSearchBase = "https://www.google.com/maps/search/"

// ZoomForRadius maps a search radius to a map zoom level. Radii that fall
// between the fixed bands use defaultZoom.
func ZoomForRadius(radiusKm float64, defaultZoom int) int {
	switch {
	case radiusKm <= 2:
		return 16
	case radiusKm <= 4:
		return 15
	case radiusKm >= 50:
		return 10
	case radiusKm >= 20:
		return 12
	}
	return defaultZoom
}

// BuildSearchURL returns the map search URL centred on lat/lng.
func BuildSearchURL(term string, lat, lng, radiusKm float64, defaultZoom int) string {
	return fmt.Sprintf("%s%s/@%s,%s,%dz",
		mapsSearchBase,
		url.QueryEscape(term),
		formatCoord(lat),
		formatCoord(lng),
		ZoomForRadius(radiusKm, defaultZoom),
	)
}

// Coordinates renders a lat/lng pair the way it is stored on records.
func Coordinates(lat, lng float64) string {
	return formatCoord(lat) + "," + formatCoord(lng)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
