package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/repository"
)

// HandleListCountries handles GET /v1/locations/countries
func HandleListCountries(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := repos.Location.ListCountries(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list countries", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": countries})
	}
}

// HandleListProvinces handles GET /v1/locations/countries/:id/provinces
func HandleListProvinces(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provinces, err := repos.Location.ListProvinces(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Error("Failed to list provinces", zap.Error(err), zap.String("country_id", c.Param("id")))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": provinces})
	}
}

// HandleListCities handles GET /v1/locations/provinces/:id/cities
func HandleListCities(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cities, err := repos.Location.ListCities(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Error("Failed to list cities", zap.Error(err), zap.String("province_id", c.Param("id")))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": cities})
	}
}
