package user

import (
	"time"

	"github.com/tidwall/buntdb"
	"gopkg.in/mgo.v2/bson"
)

// Author is a platform account as stored in the authors collection.
type Author struct {
	Id       bson.ObjectId `bson:"_id,omitempty" json:"id"`
	UserName string        `bson:"username" json:"username"`
	Email    string        `bson:"email" json:"email,omitempty"`
	Image    string        `bson:"image,omitempty" json:"image,omitempty"`
	Active   *bool         `bson:"active,omitempty" json:"-"`

	// Feed watermarks, written by the mark-as-read operation.
	LastActivityCheck map[string]time.Time `bson:"lastActivityCheck,omitempty" json:"-"`
	LastCommentsCheck map[string]time.Time `bson:"lastCommentsCheck,omitempty" json:"-"`

	Created time.Time `bson:"created_at" json:"created_at"`
	Updated time.Time `bson:"updated_at" json:"updated_at"`
}

// IsVisible reports false for deactivated accounts only.
func (a Author) IsVisible() bool {
	return a.Active == nil || *a.Active
}

// Viewer returns the per-request context of the author reading a feed.
func (a Author) Viewer() Viewer {
	return Viewer{
		ID:                a.Id,
		Email:             a.Email,
		LastActivityCheck: a.LastActivityCheck,
		LastCommentsCheck: a.LastCommentsCheck,
	}
}

type Authors []Author

func (all Authors) Map() map[bson.ObjectId]Author {
	m := make(map[bson.ObjectId]Author, len(all))
	for _, a := range all {
		m[a.Id] = a
	}
	return m
}

func (all Authors) UpdateBuntCache(tx *buntdb.Tx) (err error) {
	for _, u := range all {
		_, _, err = tx.Set("user:"+u.Id.Hex()+":names", u.UserName, nil)
		if err != nil {
			return
		}
	}
	return
}

// Summary is the slim author record used to render messages.
type Summary struct {
	Id       bson.ObjectId `json:"id"`
	UserName string        `json:"username"`
}

// Viewer is assembled per request, never stored.
type Viewer struct {
	ID                bson.ObjectId
	Email             string
	LastActivityCheck map[string]time.Time
	LastCommentsCheck map[string]time.Time
}

// ActivityWatermark returns the last activity check for a category, zero if none.
func (v Viewer) ActivityWatermark(category string) time.Time {
	return v.LastActivityCheck[category]
}

// CommentsWatermark returns the last comments check for a category, zero if none.
func (v Viewer) CommentsWatermark(category string) time.Time {
	return v.LastCommentsCheck[category]
}
