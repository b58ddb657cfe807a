package pages

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

type Page struct {
	Id       bson.ObjectId `bson:"_id,omitempty" json:"id"`
	Story    bson.ObjectId `bson:"story" json:"story"`
	Author   bson.ObjectId `bson:"author" json:"author"`
	Title    string        `bson:"title,omitempty" json:"title,omitempty"`
	Contents []Content     `bson:"contents,omitempty" json:"contents,omitempty"`
	Deleted  bool          `bson:"deleted,omitempty" json:"-"`
	Created  time.Time     `bson:"created_at" json:"created"`
	Updated  time.Time     `bson:"updated_at" json:"updated"`
}

type Content struct {
	Id   bson.ObjectId `bson:"_id,omitempty" json:"id,omitempty"`
	Type string        `bson:"type" json:"type"`
	Url  string        `bson:"url,omitempty" json:"url,omitempty"`
}

func (p Page) IsVisible() bool {
	return !p.Deleted
}

type Pages []Page

func (all Pages) IDs() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(all))
	for _, p := range all {
		list = append(list, p.Id)
	}
	return list
}
