package api

import (
	"errors"
	"math"     // Infinity default for the expense upper bound
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Cache TTL

	"travlog/internal/domain"  // Data model, validation, filter
	"travlog/internal/store"   // Persistence layer
	"travlog/internal/uploads" // Photo storage collaborator
	"travlog/internal/utils"   // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// entryCacheTTL bounds staleness of the per-owner entry list cache.
const entryCacheTTL = 60 * time.Second

// entryCacheKey is the redis key holding an owner's full entry list.
func entryCacheKey(ownerEmail string) string {
	return "entries:owner:" + ownerEmail
}

// invalidateOwnerCaches drops the cached list and stats after any mutation.
func invalidateOwnerCaches(c *gin.Context, rdb *redis.Client, ownerEmail string) {
	_ = utils.DeleteCache(c.Request.Context(), rdb, entryCacheKey(ownerEmail))
	_ = utils.DeleteCache(c.Request.Context(), rdb, "stats:owner:"+ownerEmail)
}

// CreateEntryHandler saves a journal entry submitted as multipart/form-data.
// The location and expenses fields arrive as JSON strings (FormData flattens
// everything) and are parsed back into structured form before validation;
// up to five photo files ride along under the "images" field.
func CreateEntryHandler(entries *store.EntryStore, storage *uploads.Storage, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authEmail, exists := c.Get("userEmail")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ownerEmail := strings.ToLower(strings.TrimSpace(c.PostForm("userEmail")))
		if ownerEmail != "" && !strings.EqualFold(ownerEmail, authEmail.(string)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only save your own entries"})
			return
		}
		location, err := domain.ParseLocation(c.PostForm("location"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		expenses, err := domain.ParseExpenses(c.PostForm("expenses"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Photo files are optional; a plain form post without any files is a
		// valid entry with an empty image list.
		var imagePaths []string
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if files := form.File["images"]; len(files) > 0 {
				imagePaths, err = storage.Save(c, files)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"owner": ownerEmail,
						"error": err.Error(),
					}).Error("Image upload failed")
					c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to store uploaded images"})
					return
				}
			}
		}
		entry := domain.Entry{
			OwnerEmail: ownerEmail,
			Title:      c.PostForm("title"),
			Content:    c.PostForm("content"),
			Location:   location,
			Country:    strings.TrimSpace(c.PostForm("country")),
			Currency:   strings.TrimSpace(c.PostForm("currency")),
			Expenses:   expenses,
			Images:     imagePaths,
		}
		if err := entries.Create(c.Request.Context(), &entry); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
				return
			}
			logrus.WithFields(logrus.Fields{
				"owner": ownerEmail,
				"title": entry.Title,
				"error": err.Error(),
			}).Error("Entry save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"entry_id": entry.ID,
			"owner":    entry.OwnerEmail,
			"images":   len(entry.Images),
			"expenses": len(entry.Expenses),
		}).Info("Entry saved")
		// Invalidate the owner's caches so the next fetch sees the new entry
		invalidateOwnerCaches(c, rdb, entry.OwnerEmail)
		c.JSON(http.StatusCreated, gin.H{"message": "Entry saved successfully!", "entry": entry})
	}
}

// parseFilter builds the entry filter from query parameters. Unset or
// non-numeric bounds fall back to the defaults (0 and +Inf), matching how the
// views treated blank filter inputs.
func parseFilter(c *gin.Context) domain.Filter {
	f := domain.NewFilter()
	if v, err := strconv.ParseFloat(c.Query("expense_min"), 64); err == nil && !math.IsNaN(v) {
		f.ExpenseMin = v
	}
	if v, err := strconv.ParseFloat(c.Query("expense_max"), 64); err == nil && !math.IsNaN(v) {
		f.ExpenseMax = v
	}
	f.TextQuery = c.Query("q")
	if v, err := strconv.Atoi(c.Query("min_photos")); err == nil && v > 0 {
		f.MinPhotoCount = v
	}
	return f
}

// ListEntriesHandler returns an owner's entries newest-first, optionally
// narrowed by the filter query parameters (expense_min, expense_max, q,
// min_photos). The unfiltered list is cached per owner; the filter is a pure
// predicate applied after the fetch, so cached and fresh lists filter
// identically.
func ListEntriesHandler(entries *store.EntryStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerEmail := strings.ToLower(c.Param("ownerEmail"))
		ctx := c.Request.Context()
		cacheKey := entryCacheKey(ownerEmail)
		var list []domain.Entry
		found, err := utils.GetCache(ctx, rdb, cacheKey, &list)
		if err != nil || !found {
			list, err = entries.ListByOwner(ctx, ownerEmail)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"owner": ownerEmail,
					"error": err.Error(),
				}).Error("Entry list failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
				return
			}
			_ = utils.SetCache(ctx, rdb, cacheKey, list, entryCacheTTL)
		}
		c.JSON(http.StatusOK, parseFilter(c).Apply(list))
	}
}

// DeleteEntryHandler removes a single entry by id. Deleting an id twice
// reports 404 the second time; callers racing a delete against a list fetch
// should treat that as benign.
func DeleteEntryHandler(entries *store.EntryStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authEmail, exists := c.Get("userEmail")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
			return
		}
		existing, err := entries.GetByID(c.Request.Context(), uint(id))
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Entry not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"entry_id": id,
				"error":    err.Error(),
			}).Error("Entry lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
			return
		}
		if !strings.EqualFold(existing.OwnerEmail, authEmail.(string)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own entries"})
			return
		}
		entry, err := entries.DeleteByID(c.Request.Context(), uint(id))
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				// Lost a race with another delete of the same id
				c.JSON(http.StatusNotFound, gin.H{"message": "Entry not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"entry_id": id,
				"error":    err.Error(),
			}).Error("Entry delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"entry_id": entry.ID,
			"owner":    entry.OwnerEmail,
		}).Info("Entry deleted")
		invalidateOwnerCaches(c, rdb, entry.OwnerEmail)
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
	}
}
