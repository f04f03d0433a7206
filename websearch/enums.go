package websearch

import "strings"

// Brands is the fixed set of OEM brands the lookup strategy can be pointed
// at. The list mirrors what the downstream field-service tool recognizes.
var Brands = []string{
	"Carrier",
	"Trane",
	"Lennox",
	"Goodman",
	"Rheem",
	"York",
	"Copeland",
	"Honeywell",
}

// DistributorDomains is the fixed set of distributor sites the lookup
// strategy may scrape.
var DistributorDomains = []string{
	"supplyhouse.com",
	"repairclinic.com",
	"ferguson.com",
	"grainger.com",
}

// SupportedBrand reports whether a brand is in the fixed enumeration.
func SupportedBrand(brand string) bool {
	for _, b := range Brands {
		if strings.EqualFold(b, brand) {
			return true
		}
	}
	return false
}

// SupportedDomain reports whether a domain is in the fixed enumeration.
func SupportedDomain(domain string) bool {
	for _, d := range DistributorDomains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}
