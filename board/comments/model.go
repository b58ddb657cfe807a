package comments

import (
	"time"

	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

type Comment struct {
	Id      bson.ObjectId `bson:"_id,omitempty" json:"id,omitempty"`
	Page    bson.ObjectId `bson:"page" json:"page"`
	Story   bson.ObjectId `bson:"story,omitempty" json:"story,omitempty"`
	Author  bson.ObjectId `bson:"author" json:"author"`
	Content string        `bson:"content" json:"content"`
	Active  bool          `bson:"active" json:"-"`
	Created time.Time     `bson:"created_at" json:"created"`
	Updated time.Time     `bson:"updated_at" json:"updated"`
}

func (c Comment) IsVisible() bool {
	return c.Active
}

type Comments []Comment

// AuthorIDs returns the distinct comment authors.
func (all Comments) AuthorIDs() []bson.ObjectId {
	users := map[bson.ObjectId]bool{}
	list := []bson.ObjectId{}
	for _, c := range all {
		if _, exists := users[c.Author]; !exists {
			users[c.Author] = true
			list = append(list, c.Author)
		}
	}

	return list
}

// Query selects comments posted on a set of pages.
type Query struct {
	Pages         []bson.ObjectId
	Since         time.Time
	Inclusive     bool
	ActiveOnly    bool
	ExcludeAuthor bson.ObjectId
}

func (q Query) Document() bson.M {
	doc := bson.M{"page": bson.M{"$in": q.Pages}}
	if q.ActiveOnly {
		doc["active"] = true
	}
	if q.ExcludeAuthor.Valid() {
		doc["author"] = bson.M{"$ne": q.ExcludeAuthor}
	}
	common.CreatedSince(q.Since, q.Inclusive)(doc)
	return doc
}
