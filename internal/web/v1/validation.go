package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// customerID parses the :id path parameter. A non-numeric id can never
// match a row, so it gets the same 404 a numeric miss would.
func customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return 0, false
	}
	return id, true
}

// addressID parses the :addressId path parameter.
func addressID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("addressId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return 0, false
	}
	return id, true
}

// intQuery reads an integer query parameter, returning 0 for anything
// missing or unparseable. Zero means "unset" to the list normalizer, which
// substitutes its defaults.
func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
