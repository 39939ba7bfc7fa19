package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive numeric path parameter such as :id.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
