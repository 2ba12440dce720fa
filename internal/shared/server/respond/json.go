package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageBody is the envelope for paginated list responses.
type PageBody struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Page writes items with the effective paging window.
func Page(c *gin.Context, items any, limit, offset int) {
	OK(c, PageBody{Items: items, Limit: limit, Offset: offset})
}
