package main

import (
	"fmt"
	"os"

	"github.com/jafarshop/storefront/internal/geo"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/resolve-map-url/main.go <map-url>")
		fmt.Println("Example: go run cmd/resolve-map-url/main.go \"https://www.google.com/maps/@27.7172,85.3240,15z\"")
		os.Exit(1)
	}

	rawURL := os.Args[1]

	fmt.Printf("🔍 Resolving: %s\n\n", rawURL)

	coords := geo.ParseMapURL(rawURL)
	if coords == nil {
		fmt.Println("❌ No coordinates found. Supported: Google Maps, Apple Maps, OpenStreetMap.")
		os.Exit(1)
	}

	fmt.Printf("✅ Found coordinates\n")
	fmt.Printf("   Latitude:  %s\n", coords.Lat)
	fmt.Printf("   Longitude: %s\n", coords.Lng)
	fmt.Printf("   Map link:  %s\n", coords.MapLink())
}
