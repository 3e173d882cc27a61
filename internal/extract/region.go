package extract

import "strings"

var countryRegions = map[string]string{
	// Americas
	"united states": "Americas", "canada": "Americas", "brazil": "Americas",
	"argentina": "Americas", "chile": "Americas", "mexico": "Americas",
	"colombia": "Americas", "peru": "Americas", "uruguay": "Americas",
	"venezuela": "Americas", "ecuador": "Americas", "bolivia": "Americas",
	"paraguay": "Americas",

	// Asia
	"south korea": "Asia", "korea": "Asia", "japan": "Asia", "china": "Asia",
	"taiwan": "Asia", "hong kong": "Asia", "philippines": "Asia",
	"thailand": "Asia", "vietnam": "Asia", "indonesia": "Asia",
	"malaysia": "Asia", "singapore": "Asia", "india": "Asia",
	"pakistan": "Asia", "mongolia": "Asia",
}

// RegionFor maps a country name to its region, or "" when it is not known
func RegionFor(country string) string {
	return countryRegions[strings.ToLower(strings.TrimSpace(country))]
}

// regionOr returns region, falling back to the region of country
func regionOr(region, country string) string {
	if region != "" {
		return region
	}
	return RegionFor(country)
}
