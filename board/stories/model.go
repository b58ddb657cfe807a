package stories

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

type Story struct {
	Id            bson.ObjectId  `bson:"_id,omitempty" json:"id"`
	Title         string         `bson:"title" json:"title"`
	Author        bson.ObjectId  `bson:"author" json:"author"`
	Collaborators []Collaborator `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	Deleted       bool           `bson:"deleted,omitempty" json:"deleted,omitempty"`
	Created       time.Time      `bson:"created_at" json:"created"`
	Updated       time.Time      `bson:"updated_at" json:"updated"`
}

// Collaborator with Edit set may change content, otherwise the story is
// only shared with them.
type Collaborator struct {
	Author bson.ObjectId `bson:"author" json:"author"`
	Edit   bool          `bson:"edit" json:"edit"`
}

func (s Story) IsVisible() bool {
	return !s.Deleted
}

// Participants returns the story author followed by its collaborators in
// list order.
func (s Story) Participants() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(s.Collaborators)+1)
	list = append(list, s.Author)
	for _, c := range s.Collaborators {
		list = append(list, c.Author)
	}
	return list
}

type Stories []Story

func (all Stories) Map() map[bson.ObjectId]Story {
	m := make(map[bson.ObjectId]Story, len(all))
	for _, s := range all {
		m[s.Id] = s
	}
	return m
}

func (all Stories) IDs() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(all))
	for _, s := range all {
		list = append(list, s.Id)
	}
	return list
}

// Authors lists story owners.
func (all Stories) Authors() []bson.ObjectId {
	list := make([]bson.ObjectId, 0, len(all))
	for _, s := range all {
		list = append(list, s.Author)
	}
	return list
}

// Participants lists owners and collaborators of every story.
func (all Stories) Participants() []bson.ObjectId {
	list := []bson.ObjectId{}
	for _, s := range all {
		list = append(list, s.Participants()...)
	}
	return list
}
