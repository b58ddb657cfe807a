package follows

import (
	"time"

	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

// Edge is a directed follow relation, soft deleted through Active.
type Edge struct {
	Id       bson.ObjectId `bson:"_id,omitempty" json:"id"`
	Follower bson.ObjectId `bson:"follower" json:"follower"`
	Followed bson.ObjectId `bson:"followed" json:"followed"`
	Active   bool          `bson:"active" json:"active"`
	Created  time.Time     `bson:"created_at" json:"created"`
	Updated  time.Time     `bson:"updated_at" json:"updated"`
}

func (e Edge) IsVisible() bool {
	return e.Active
}

type Edges []Edge

// Followed lists the accounts on the followed side.
func (all Edges) Followed() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(all))
	for _, e := range all {
		list = append(list, e.Followed)
	}
	return list
}

// Followers lists the accounts on the follower side.
func (all Edges) Followers() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(all))
	for _, e := range all {
		list = append(list, e.Follower)
	}
	return list
}

// Query selects edges by either end.
type Query struct {
	Follower   bson.ObjectId
	Followed   bson.ObjectId
	Since      time.Time
	Inclusive  bool
	ActiveOnly bool
}

func (q Query) Document() bson.M {
	doc := bson.M{}
	if q.Follower.Valid() {
		doc["follower"] = q.Follower
	}
	if q.Followed.Valid() {
		doc["followed"] = q.Followed
	}
	if q.ActiveOnly {
		doc["active"] = true
	}
	common.CreatedSince(q.Since, q.Inclusive)(doc)
	return doc
}
