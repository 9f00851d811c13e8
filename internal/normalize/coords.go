package normalize

import (
	"regexp"
	"strconv"
)

var coordPair = regexp.MustCompile(`([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)`)

// ParseCoordinates extracts the first "lat, lon" pair of signed decimals from
// free text such as "Latitude, Longitude: 37.7749, -122.4194".
func ParseCoordinates(text string) (lat, lon float64, ok bool) {
	m := coordPair.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
