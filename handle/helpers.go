package handle

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/storyfeed/board/feed"
	"github.com/tryanzu/storyfeed/core/paginate"
)

func splitList(raw string) []string {
	list := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func filtersFrom(c *gin.Context) feed.Filters {
	return feed.Filters{
		Types:    splitList(c.Query("types")),
		Contents: splitList(c.Query("contents")),
	}
}

// daysFrom parses an optional day count. Absent values return nil.
func daysFrom(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &feed.ValidationError{Field: "days", Message: "expected a whole number of days"}
	}
	return &days, nil
}

func intOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// pageFrom reads page, limit and sort. Bad numbers fall back to defaults.
func pageFrom(c *gin.Context, limit int) paginate.Options {
	if limit < 1 {
		limit = paginate.DefaultLimit
	}
	return paginate.Options{
		Page:  intOr(c.Query("page"), 1),
		Limit: intOr(c.Query("limit"), limit),
		Sort:  paginate.ParseSort(c.Query("sort")),
	}
}
