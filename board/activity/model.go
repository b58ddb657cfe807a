package activity

import (
	"time"

	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

// Known activity types. The set is open, writers may add more.
const (
	NewFollower             = "new_follower"
	NewComment              = "new_comment"
	NewPage                 = "new_page"
	NewStory                = "new_story"
	CollaborationAdded      = "collaboration_added"
	CollaborationRemoved    = "collaboration_removed"
	CollaborationLeaved     = "collaboration_leaved"
	CollaborationShareFalse = "collaboration_share_false"
)

// Activity is an immutable domain event. Which Data fields are set
// depends on Type.
type Activity struct {
	ID      bson.ObjectId `bson:"_id,omitempty" json:"id"`
	Type    string        `bson:"type" json:"type"`
	Author  bson.ObjectId `bson:"author" json:"author"`
	To      bson.ObjectId `bson:"to,omitempty" json:"to,omitempty"`
	Data    Data          `bson:"data" json:"data"`
	Created time.Time     `bson:"created_at" json:"created"`
	Updated time.Time     `bson:"updated_at" json:"updated"`
}

type Data struct {
	StoryId        bson.ObjectId `bson:"storyId,omitempty" json:"storyId,omitempty"`
	PageId         bson.ObjectId `bson:"pageId,omitempty" json:"pageId,omitempty"`
	CollaboratorId bson.ObjectId `bson:"collaboratorId,omitempty" json:"collaboratorId,omitempty"`
	Contents       []ContentRef  `bson:"contents,omitempty" json:"contents,omitempty"`
	Message        string        `bson:"message,omitempty" json:"message,omitempty"`
}

// ContentRef points to a piece of page content.
type ContentRef struct {
	Id   bson.ObjectId `bson:"_id,omitempty" json:"id,omitempty"`
	Type string        `bson:"type" json:"type"`
}

type List []Activity

// StoryIDs returns the referenced story ids.
func (all List) StoryIDs() []bson.ObjectId {
	ids := []bson.ObjectId{}
	for _, a := range all {
		if a.Data.StoryId.Valid() {
			ids = append(ids, a.Data.StoryId)
		}
	}
	return ids
}

// AuthorIDs returns actors and collaborators referenced by the list.
func (all List) AuthorIDs() []bson.ObjectId {
	ids := []bson.ObjectId{}
	for _, a := range all {
		ids = append(ids, a.Author)
		if a.Data.CollaboratorId.Valid() {
			ids = append(ids, a.Data.CollaboratorId)
		}
	}
	return ids
}

// Query selects activities from one of the feed sources.
type Query struct {
	Recipient     bson.ObjectId
	Authors       []bson.ObjectId
	Stories       []bson.ObjectId
	Subject       bson.ObjectId
	ExcludeAuthor bson.ObjectId
	Since         time.Time
	Inclusive     bool
}

// Empty reports whether the query has no source to read from.
func (q Query) Empty() bool {
	return !q.Recipient.Valid() && len(q.Authors) == 0 && len(q.Stories) == 0 && !q.Subject.Valid()
}

func (q Query) Document() bson.M {
	doc := bson.M{}
	if q.Recipient.Valid() {
		doc["to"] = q.Recipient
	}

	author := bson.M{}
	if len(q.Authors) > 0 {
		author["$in"] = q.Authors
	}
	if q.ExcludeAuthor.Valid() {
		author["$ne"] = q.ExcludeAuthor
	}
	if len(author) > 0 {
		doc["author"] = author
	}

	or := []bson.M{}
	if len(q.Stories) > 0 {
		or = append(or, bson.M{"data.storyId": bson.M{"$in": q.Stories}})
	}
	if q.Subject.Valid() {
		or = append(or, bson.M{"data.collaboratorId": q.Subject})
	}
	if len(or) > 0 {
		doc["$or"] = or
	}

	common.CreatedSince(q.Since, q.Inclusive)(doc)
	return doc
}
