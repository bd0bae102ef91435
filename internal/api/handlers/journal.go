package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/logging"
)

// JournalReader returns recently executed commands.
type JournalReader interface {
	Recent(limit int) []journal.Entry
	Total() uint64
}

// JournalQuery holds the query parameters of GET /journal.
type JournalQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100000"`
}

// HandleJournal returns the newest journal entries, oldest first.
//
// GET /api/v1/journal?limit=N
func HandleJournal(reader JournalReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query JournalQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			logging.Warn("Journal: Invalid query: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"error":   "Invalid query parameters",
				"details": err.Error(),
			})
			return
		}

		entries := reader.Recent(query.Limit)
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   entries,
			"count":  len(entries),
			"total":  reader.Total(),
		})
	}
}
