package feed

import (
	"github.com/tryanzu/storyfeed/board/activity"
	"gopkg.in/mgo.v2/bson"
)

// Role is how the viewer relates to an activity.
type Role string

const (
	ByYou     Role = "by_you"
	Subject   Role = "you"
	Bystander Role = "by_someone"
)

var roles = []Role{ByYou, Subject, Bystander}

func ParseRole(s string) (Role, bool) {
	for _, r := range roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ClassifyRole puts authorship first: an author removing themselves is
// still by_you.
func ClassifyRole(a activity.Activity, viewer bson.ObjectId) Role {
	switch {
	case a.Author == viewer:
		return ByYou
	case a.Data.CollaboratorId.Valid() && a.Data.CollaboratorId == viewer:
		return Subject
	default:
		return Bystander
	}
}

// Ambiguous reports whether the phrasing of kind depends on the role.
func Ambiguous(kind string) bool {
	switch kind {
	case activity.CollaborationAdded,
		activity.CollaborationRemoved,
		activity.CollaborationLeaved,
		activity.CollaborationShareFalse:
		return true
	}
	return false
}

// Visibility tells which roles may see an activity type. Missing entries
// are visible.
type Visibility map[string]map[Role]bool

func DefaultVisibility() Visibility {
	return Visibility{
		activity.CollaborationShareFalse: {ByYou: false},
	}
}

// Merge layers configured rules on top of v. Unknown roles are skipped.
func (v Visibility) Merge(rules map[string]map[string]bool) Visibility {
	out := make(Visibility, len(v)+len(rules))
	for kind, byRole := range v {
		out[kind] = make(map[Role]bool, len(byRole))
		for role, visible := range byRole {
			out[kind][role] = visible
		}
	}
	for kind, byRole := range rules {
		for name, visible := range byRole {
			role, ok := ParseRole(name)
			if !ok {
				log.Warningf("visibility rule ignored	type=%s role=%s", kind, name)
				continue
			}
			if out[kind] == nil {
				out[kind] = map[Role]bool{}
			}
			out[kind][role] = visible
		}
	}
	return out
}

func (v Visibility) Visible(kind string, role Role) bool {
	visible, exists := v[kind][role]
	return !exists || visible
}
