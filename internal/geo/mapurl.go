// Package geo extracts coordinates from map links pasted into the checkout form.
package geo

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
)

var (
	googleAtPattern = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	pairPattern     = regexp.MustCompile(`^(-?\d+(?:\.\d+)?),\s*(-?\d+(?:\.\d+)?)$`)
	osmHashPattern  = regexp.MustCompile(`^map=\d+(?:\.\d+)?/(-?\d+(?:\.\d+)?)/(-?\d+(?:\.\d+)?)`)
	numberPattern   = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// ParseMapURL returns the coordinates embedded in a Google Maps, Apple Maps
// or OpenStreetMap link, or nil when the link is empty, malformed or from
// another provider. Lat/lng are returned exactly as written in the link.
func ParseMapURL(raw string) *domain.Coordinates {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return nil
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	switch {
	case isGoogleHost(host):
		return parseGoogle(u)
	case onDomain(host, "apple.com"):
		return parsePair(u.Query().Get("ll"))
	case onDomain(host, "openstreetmap.org"):
		return parseOpenStreetMap(u)
	default:
		return nil
	}
}

// onDomain reports whether host is domain or one of its subdomains
func onDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// isGoogleHost accepts google.com, its subdomains and regional forms such as
// maps.google.com.np
func isGoogleHost(host string) bool {
	if onDomain(host, "google.com") {
		return true
	}
	i := strings.LastIndex(host, ".")
	return i > 0 && len(host)-i-1 == 2 && onDomain(host[:i], "google.com")
}

func parseGoogle(u *url.URL) *domain.Coordinates {
	if m := googleAtPattern.FindStringSubmatch(u.Path); m != nil {
		return &domain.Coordinates{Lat: m[1], Lng: m[2]}
	}

	query := u.Query()
	if c := parsePair(query.Get("q")); c != nil {
		return c
	}
	return parsePair(query.Get("ll"))
}

func parseOpenStreetMap(u *url.URL) *domain.Coordinates {
	query := u.Query()
	lat, lng := query.Get("mlat"), query.Get("mlon")
	if isNumber(lat) && isNumber(lng) {
		return &domain.Coordinates{Lat: lat, Lng: lng}
	}

	if m := osmHashPattern.FindStringSubmatch(u.Fragment); m != nil {
		return &domain.Coordinates{Lat: m[1], Lng: m[2]}
	}
	return nil
}

// parsePair reads a "lat,lng" value as used by the q and ll parameters
func parsePair(value string) *domain.Coordinates {
	m := pairPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil
	}
	return &domain.Coordinates{Lat: m[1], Lng: m[2]}
}

func isNumber(s string) bool {
	return numberPattern.MatchString(s)
}
