package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/storefront/internal/geo"
)

// ResolveResponse is the result of resolving a pasted map link
type ResolveResponse struct {
	Found   bool   `json:"found"`
	Lat     string `json:"lat,omitempty"`
	Lng     string `json:"lng,omitempty"`
	MapLink string `json:"mapLink,omitempty"`
}

// HandleResolveMapURL handles GET /v1/geo/resolve?url=. An unrecognised link
// is not an error; the response just reports found=false.
func HandleResolveMapURL() gin.HandlerFunc {
	return func(c *gin.Context) {
		coords := geo.ParseMapURL(c.Query("url"))
		if coords == nil {
			c.JSON(http.StatusOK, ResolveResponse{Found: false})
			return
		}

		c.JSON(http.StatusOK, ResolveResponse{
			Found:   true,
			Lat:     coords.Lat,
			Lng:     coords.Lng,
			MapLink: coords.MapLink(),
		})
	}
}
