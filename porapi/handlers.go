package porapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gilby125/por-search/porerr"
)

// searchResponse is the JSON shape of GET /search.
type searchResponse struct {
	Locations      []locationView `json:"locations"`
	UnmatchedWords []string       `json:"unmatched_words"`
}

// Search handles GET /search?q=<query>, spec.md §6.4's interpret().
func Search(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")

		locations, unmatched, err := svc.Interpret(c.Request.Context(), query)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, searchResponse{
			Locations:      toLocationViews(locations),
			UnmatchedWords: unmatched,
		})
	}
}

// Size handles GET /size, spec.md §6.4's size().
func Size(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.Size(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// Sample handles GET /sample?n=<count>, spec.md §6.4's sample(n).
func Sample(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
		if err != nil || n <= 0 {
			n = 10
		}
		locations, err := svc.Sample(c.Request.Context(), n)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"locations": toLocationViews(locations)})
	}
}

// reindexRequest is the JSON body of POST /reindex.
type reindexRequest struct {
	CatalogPath string `json:"catalog_path" binding:"required"`
}

// Reindex handles POST /reindex, spec.md §6.4's build_index().
func Reindex(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reindexRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := svc.Reindex(c.Request.Context(), req.CatalogPath)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// writeError maps the public error taxonomy of spec.md §6.4 onto HTTP
// status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case err == porerr.ErrEmpty:
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty"})
	case err == porerr.ErrNoSuchIndex:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no_such_index"})
	case err == porerr.ErrTimeout:
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
	case err == porerr.ErrIndexInconsistent:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "index_inconsistent"})
	case err == porerr.ErrBackendUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backend_unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
