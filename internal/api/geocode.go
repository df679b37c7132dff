package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DefaultGeocodeURL is the nominatim search endpoint the frontend map widget
// used to call directly; the server proxies it so browsers only talk to us.
const DefaultGeocodeURL = "https://nominatim.openstreetmap.org/search"

var geocodeClient = &http.Client{Timeout: 10 * time.Second}

// GeocodeResult is the single best match for a free-text place query.
// Coordinates pass through unvalidated; the entry validator checks ranges
// when a location is actually saved.
type GeocodeResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
	Country     string  `json:"country,omitempty"`
}

// nominatimPlace is the subset of the nominatim response we read.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Country string `json:"country"`
	} `json:"address"`
}

// GeocodeHandler resolves ?q= to the best-matching place. No match is a 404;
// an unreachable upstream is a 502.
func GeocodeHandler(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
			return
		}
		u := baseURL + "?format=json&limit=1&addressdetails=1&q=" + url.QueryEscape(query)
		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, u, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Geocoding failed"})
			return
		}
		// Nominatim's usage policy requires an identifying user agent
		req.Header.Set("User-Agent", "travlog-server")
		resp, err := geocodeClient.Do(req)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"query": query,
				"error": err.Error(),
			}).Error("Geocoding request failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
			return
		}
		var places []nominatimPlace
		if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
			return
		}
		if len(places) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found. Try a more specific address."})
			return
		}
		lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
		lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
			return
		}
		c.JSON(http.StatusOK, GeocodeResult{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: places[0].DisplayName,
			Country:     places[0].Address.Country,
		})
	}
}
