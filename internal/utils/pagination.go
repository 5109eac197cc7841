package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/constants"
)

var ErrInvalidPagination = errors.New("invalid pagination parameters")

// PaginationParams holds the skip/limit window of a list request
type PaginationParams struct {
	Skip  int
	Limit int
}

// Page is the 1-indexed page derived from the window, never stored.
func (p PaginationParams) Page() int {
	return p.Skip/p.Limit + 1
}

// GetPaginationParams reads skip and limit from the query string. skip must lie
// in [0, MaxSkip] and limit must lie in [MinPageSize, maxLimit]; out-of-range or
// non-numeric values are rejected rather than clamped.
func GetPaginationParams(c *gin.Context, defaultLimit, maxLimit int) (PaginationParams, error) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(constants.DefaultSkip)))
	if err != nil || skip < 0 || skip > constants.MaxSkip {
		return PaginationParams{}, fmt.Errorf("%w: skip must be between 0 and %d", ErrInvalidPagination, constants.MaxSkip)
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < constants.MinPageSize || limit > maxLimit {
		return PaginationParams{}, fmt.Errorf("%w: limit must be between %d and %d",
			ErrInvalidPagination, constants.MinPageSize, maxLimit)
	}

	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}, nil
}
