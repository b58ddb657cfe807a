package paginate

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultLimit = 10

// Sort names the field a list is ordered by. PropPath may be nested one
// level under BasePath (e.g. comment.created).
type Sort struct {
	BasePath string
	PropPath string
	Order    string
}

func (s Sort) path() string {
	if s.BasePath == "" {
		return s.PropPath
	}
	return s.BasePath + "." + s.PropPath
}

// Direction reports whether Order asks for ascending or descending order.
// Unknown orders leave the list untouched.
func (s Sort) Direction() (ascending, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s.Order)) {
	case "asc", "ascending", "1":
		return true, true
	case "desc", "descending", "-1":
		return false, true
	}
	return false, false
}

// ParseSort splits "field:order" or "field.subfield:order".
func ParseSort(raw string) Sort {
	var s Sort
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s
	}

	path := raw
	if n := strings.LastIndex(raw, ":"); n != -1 {
		path, s.Order = raw[:n], raw[n+1:]
	}
	if n := strings.Index(path, "."); n != -1 {
		s.BasePath, s.PropPath = path[:n], path[n+1:]
	} else {
		s.PropPath = path
	}
	return s
}

type Options struct {
	Page  int
	Limit int
	Sort
}

type Result[T any] struct {
	Docs  []T `json:"docs"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Paginate sorts items when asked to and returns the requested page.
// It never fails: out of range pages come back empty.
func Paginate[T any](items []T, opts Options) Result[T] {
	page, limit := opts.Page, opts.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	list := items
	if ascending, ok := opts.Direction(); ok && opts.PropPath != "" {
		list = sorted(items, opts.path(), ascending)
	}

	total := len(list)
	result := Result[T]{
		Docs:  []T{},
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}

	start := (page - 1) * limit
	if start >= total {
		return result
	}
	end := start + limit
	if end > total {
		end = total
	}
	result.Docs = append(result.Docs, list[start:end]...)
	return result
}

type keyed[T any] struct {
	item T
	key  gjson.Result
}

func sorted[T any](items []T, path string, ascending bool) []T {
	list := make([]keyed[T], len(items))
	for n, item := range items {
		list[n] = keyed[T]{item: item, key: lookup(item, path)}
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].key, list[j].key
		if missing(a) || missing(b) {
			return !missing(a) && missing(b)
		}
		if ascending {
			return less(a, b)
		}
		return less(b, a)
	})

	out := make([]T, len(list))
	for n, k := range list {
		out[n] = k.item
	}
	return out
}

func lookup(item interface{}, path string) gjson.Result {
	b, err := json.Marshal(item)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(b, path)
}

func missing(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}

func less(a, b gjson.Result) bool {
	if a.Type == gjson.String && b.Type == gjson.String {
		ta, errA := time.Parse(time.RFC3339Nano, a.Str)
		tb, errB := time.Parse(time.RFC3339Nano, b.Str)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
		return a.Str < b.Str
	}
	if a.Type == gjson.Number && b.Type == gjson.Number {
		return a.Num < b.Num
	}
	if isBool(a) && isBool(b) {
		return !a.Bool() && b.Bool()
	}
	return a.Type < b.Type
}

func isBool(r gjson.Result) bool {
	return r.Type == gjson.True || r.Type == gjson.False
}
