package invites

import (
	"regexp"
	"sort"
	"time"

	"github.com/goware/emailx"
	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

const (
	KindCollaboration = "collaboration"
	KindGroup         = "group"
)

// Target is who an invitation is addressed to, an account or an email.
type Target struct {
	Author bson.ObjectId `bson:"author,omitempty" json:"author,omitempty"`
	Email  string        `bson:"email,omitempty" json:"email,omitempty"`
}

// NewTarget addresses an invitation, storing the email normalized.
func NewTarget(id bson.ObjectId, email string) Target {
	return Target{Author: id, Email: emailx.Normalize(email)}
}

// Matches compares by id first and by normalized email otherwise.
func (t Target) Matches(id bson.ObjectId, email string) bool {
	if t.Author.Valid() && t.Author == id {
		return true
	}
	return t.Email != "" && email != "" && emailx.Normalize(t.Email) == emailx.Normalize(email)
}

// Collaboration is an invitation to collaborate on a story.
type Collaboration struct {
	Id       bson.ObjectId `bson:"_id,omitempty"`
	Story    bson.ObjectId `bson:"story"`
	Author   bson.ObjectId `bson:"author"`
	Invited  bson.ObjectId `bson:"invited,omitempty"`
	Email    string        `bson:"email,omitempty"`
	Edit     bool          `bson:"edit"`
	Accepted *bool         `bson:"accepted"`
	Created  time.Time     `bson:"created_at"`
}

func (c Collaboration) Invite() Invite {
	return Invite{
		Id:       c.Id,
		Kind:     KindCollaboration,
		Target:   c.Story,
		Author:   c.Author,
		Invited:  Target{Author: c.Invited, Email: c.Email},
		Accepted: c.Accepted,
		Created:  c.Created,
	}
}

// Group is an invitation to join a group.
type Group struct {
	Id       bson.ObjectId `bson:"_id,omitempty"`
	Group    bson.ObjectId `bson:"group"`
	Author   bson.ObjectId `bson:"author"`
	Invited  Target        `bson:"invited"`
	Accepted *bool         `bson:"accepted"`
	Created  time.Time     `bson:"created_at"`
}

func (g Group) Invite() Invite {
	return Invite{
		Id:       g.Id,
		Kind:     KindGroup,
		Target:   g.Group,
		Author:   g.Author,
		Invited:  g.Invited,
		Accepted: g.Accepted,
		Created:  g.Created,
	}
}

// Invite is the common shape of both invitation kinds.
type Invite struct {
	Id       bson.ObjectId `json:"id"`
	Kind     string        `json:"kind"`
	Target   bson.ObjectId `json:"target"`
	Author   bson.ObjectId `json:"author"`
	Invited  Target        `json:"invited"`
	Accepted *bool         `json:"accepted"`
	Created  time.Time     `json:"created"`
}

func (i Invite) Pending() bool {
	return i.Accepted == nil
}

type List []Invite

// Newest sorts invitations by creation date, newest first.
func (all List) Newest() List {
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Created.After(all[j].Created)
	})
	return all
}

// Query selects invitations addressed to an account or its email.
type Query struct {
	Invited     bson.ObjectId
	Email       string
	Since       time.Time
	Inclusive   bool
	PendingOnly bool
}

// Document builds the query for a collection. Group invites nest the
// target under "invited".
func (q Query) Document(kind string) bson.M {
	idField, emailField := "invited", "email"
	if kind == KindGroup {
		idField, emailField = "invited.author", "invited.email"
	}

	or := []bson.M{}
	if q.Invited.Valid() {
		or = append(or, bson.M{idField: q.Invited})
	}
	if email := emailx.Normalize(q.Email); email != "" {
		or = append(or, bson.M{emailField: EmailPattern(email)})
	}

	doc := bson.M{"$or": or}
	if q.PendingOnly {
		doc["accepted"] = nil
	}
	common.CreatedSince(q.Since, q.Inclusive)(doc)
	return doc
}

// EmailPattern matches a stored email regardless of case or surrounding
// spaces, since older documents were written without normalization.
func EmailPattern(email string) bson.RegEx {
	return bson.RegEx{
		Pattern: `^\s*` + regexp.QuoteMeta(emailx.Normalize(email)) + `\s*$`,
		Options: "i",
	}
}
