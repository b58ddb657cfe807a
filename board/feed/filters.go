package feed

import (
	"sort"
	"strings"

	"github.com/tryanzu/storyfeed/board/activity"
	"golang.org/x/text/cases"
)

// Filters narrow a feed by coarse tags. Empty lists select everything.
type Filters struct {
	Types    []string
	Contents []string
}

var activityTags = map[string]string{
	activity.NewFollower:             "follows",
	activity.NewComment:              "comments",
	activity.CollaborationAdded:      "collaborations",
	activity.CollaborationRemoved:    "collaborations",
	activity.CollaborationLeaved:     "collaborations",
	activity.CollaborationShareFalse: "collaborations",
	activity.NewStory:                "stories",
	activity.NewPage:                 "pages",
}

var contentTags = map[string]string{
	"audio":     "audios",
	"video":     "videos",
	"image":     "images",
	"text":      "texts",
	"recording": "recordings",
}

var fold = cases.Fold()

// Tags maps activity and content types to the tags clients filter by.
type Tags struct {
	activities map[string]string
	contents   map[string]string
}

// NewTags merges extra lookups over the built-in ones.
func NewTags(activities, contents map[string]string) Tags {
	return Tags{
		activities: mergeTags(activityTags, activities),
		contents:   mergeTags(contentTags, contents),
	}
}

func mergeTags(base, extra map[string]string) map[string]string {
	m := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		m[k] = fold.String(v)
	}
	for k, v := range extra {
		m[k] = fold.String(v)
	}
	return m
}

func (t Tags) ActivityTag(kind string) string {
	return t.activities[kind]
}

func (t Tags) ContentTag(kind string) string {
	return t.contents[fold.String(kind)]
}

// Selector is a compiled Filters value.
type Selector struct {
	tags     Tags
	types    map[string]bool
	contents map[string]bool
}

// Compile validates every requested tag.
func (t Tags) Compile(f Filters) (Selector, error) {
	s := Selector{tags: t}
	var err error
	if s.types, err = compileSet("types", f.Types, t.activities); err != nil {
		return s, err
	}
	if s.contents, err = compileSet("contents", f.Contents, t.contents); err != nil {
		return s, err
	}
	return s, nil
}

func compileSet(field string, requested []string, lookup map[string]string) (map[string]bool, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	known := map[string]bool{}
	for _, tag := range lookup {
		known[tag] = true
	}

	set := map[string]bool{}
	for _, raw := range requested {
		tag := fold.String(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		if !known[tag] {
			return nil, invalid(field, "unknown tag %q, expected one of %s", raw, strings.Join(sortedKeys(known), ", "))
		}
		set[tag] = true
	}
	if len(set) == 0 {
		return nil, nil
	}
	return set, nil
}

func sortedKeys(m map[string]bool) []string {
	list := make([]string, 0, len(m))
	for k := range m {
		list = append(list, k)
	}
	sort.Strings(list)
	return list
}

// Match reports whether an activity of kind carrying contents is selected.
func (s Selector) Match(kind string, contents []activity.ContentRef) bool {
	if s.types != nil && !s.types[s.tags.ActivityTag(kind)] {
		return false
	}
	if s.contents == nil {
		return true
	}
	for _, c := range contents {
		if s.contents[s.tags.ContentTag(c.Type)] {
			return true
		}
	}
	return false
}
