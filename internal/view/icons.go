package view

import "strings"

// Amenity icons shipped with the static assets. Lookup is case-insensitive
// on the trimmed name; anything unmapped falls back to the generic icon.
const defaultIcon = "images/icon_generic.png"

var amenityIcons = map[string]string{
	"wifi":             "images/icon_wifi.png",
	"wi-fi":            "images/icon_wifi.png",
	"pool":             "images/icon_pool.png",
	"swimming pool":    "images/icon_pool.png",
	"air conditioning": "images/icon_ac.png",
	"bathtub":          "images/icon_bath.png",
	"kitchen":          "images/icon_kitchen.png",
	"parking":          "images/icon_parking.png",
	"tv":               "images/icon_tv.png",
	"pet friendly":     "images/icon_pets.png",
	"washer":           "images/icon_washer.png",
}

func IconFor(name string) string {
	if icon, ok := amenityIcons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return icon
	}
	return defaultIcon
}
