package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"travlog/internal/domain"
	"travlog/internal/store"
	"travlog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// OwnerStats carries the aggregates the profile and list views display:
// how many entries and photos an owner has, what they spent per currency,
// and which countries they logged.
type OwnerStats struct {
	EntryCount    int                `json:"entryCount"`
	PhotoCount    int                `json:"photoCount"`
	SpendTotals   map[string]float64 `json:"spendTotals"` // Total expenses keyed by currency code
	Countries     []string           `json:"countries"`   // Distinct countries, sorted
	CountryCount  int                `json:"countryCount"`
	LatestEntryAt *time.Time         `json:"latestEntryAt,omitempty"`
}

// ComputeOwnerStats folds an entry list into its display aggregates.
// Pure; entries with no country or no expenses simply contribute nothing to
// those buckets.
func ComputeOwnerStats(entries []domain.Entry) OwnerStats {
	stats := OwnerStats{
		EntryCount:  len(entries),
		SpendTotals: map[string]float64{},
		Countries:   []string{},
	}
	seen := map[string]bool{}
	for i := range entries {
		e := &entries[i]
		stats.PhotoCount += len(e.Images)
		if total := domain.TotalExpenses(e.Expenses); total > 0 {
			currency := e.Currency
			if currency == "" {
				currency = domain.DefaultCurrency
			}
			stats.SpendTotals[currency] += total
		}
		if country := strings.TrimSpace(e.Country); country != "" && !seen[strings.ToLower(country)] {
			seen[strings.ToLower(country)] = true
			stats.Countries = append(stats.Countries, country)
		}
		if stats.LatestEntryAt == nil || e.CreatedAt.After(*stats.LatestEntryAt) {
			t := e.CreatedAt
			stats.LatestEntryAt = &t
		}
	}
	sort.Strings(stats.Countries)
	stats.CountryCount = len(stats.Countries)
	return stats
}

// OwnerStatsHandler returns the aggregates for one owner, cached briefly
// alongside the entry list.
func OwnerStatsHandler(entries *store.EntryStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerEmail := strings.ToLower(c.Param("ownerEmail"))
		ctx := c.Request.Context()
		cacheKey := "stats:owner:" + ownerEmail
		var cached OwnerStats
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": cached, "cached": true})
			return
		}
		list, err := entries.ListByOwner(ctx, ownerEmail)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"owner": ownerEmail,
				"error": err.Error(),
			}).Error("Stats fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		stats := ComputeOwnerStats(list)
		_ = utils.SetCache(ctx, rdb, cacheKey, stats, entryCacheTTL)
		c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
	}
}
