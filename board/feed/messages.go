package feed

import (
	"github.com/tryanzu/storyfeed/board/activity"
)

// Params fill a message template.
type Params struct {
	Other        string
	Collaborator string
	Title        string
}

type template func(p Params) string

var templates = map[string]map[Role]template{
	activity.CollaborationAdded: {
		ByYou: func(p Params) string {
			return "You added " + p.Collaborator + " to Story " + p.Title
		},
		Subject: func(p Params) string {
			return p.Other + " added you to Story " + p.Title
		},
		Bystander: func(p Params) string {
			return p.Other + " added " + p.Collaborator + " to Story " + p.Title
		},
	},
	activity.CollaborationRemoved: {
		ByYou: func(p Params) string {
			return "You removed " + p.Collaborator + " from Story " + p.Title
		},
		Subject: func(p Params) string {
			return p.Other + " removed you from Story " + p.Title
		},
		Bystander: func(p Params) string {
			return p.Other + " removed " + p.Collaborator + " from Story " + p.Title
		},
	},
	activity.CollaborationLeaved: {
		Subject: func(p Params) string {
			return p.Other + " is no longer on Story " + p.Title
		},
	},
	activity.CollaborationShareFalse: {
		Bystander: func(p Params) string {
			return p.Other + " change Story status to private, you are no more collaborating to Story " + p.Title
		},
	},
}

// Render returns the message for kind as seen by role, empty when the
// matrix has no template. Placeholders are plain text, escaping is up to
// whoever displays the message.
func Render(kind string, role Role, p Params) string {
	tpl, exists := templates[kind][role]
	if !exists {
		return ""
	}
	return tpl(p)
}

// Subtype qualifies added and removed activities with the role.
func Subtype(kind string, role Role) string {
	switch kind {
	case activity.CollaborationAdded, activity.CollaborationRemoved:
		return kind + "_" + string(role)
	}
	return kind
}
