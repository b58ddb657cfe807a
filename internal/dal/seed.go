package dal

import (
	"time"

	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/comments"
	"github.com/tryanzu/storyfeed/board/follows"
	"github.com/tryanzu/storyfeed/board/invites"
	"github.com/tryanzu/storyfeed/board/pages"
	"github.com/tryanzu/storyfeed/board/stories"
	"github.com/tryanzu/storyfeed/core/user"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

type deps interface {
	Mgo() *mgo.Database
}

// Seed inserts a small demo graph and returns the account whose feeds are
// populated.
func Seed(d deps) (bson.ObjectId, error) {
	db := d.Mgo()
	now := time.Now()
	ago := func(hours int) time.Time {
		return now.Add(-time.Duration(hours) * time.Hour)
	}

	authors := user.Authors{
		{Id: bson.NewObjectId(), UserName: "alice", Email: "alice@local.domain", Created: ago(720)},
		{Id: bson.NewObjectId(), UserName: "bob", Email: "bob@local.domain", Created: ago(720)},
		{Id: bson.NewObjectId(), UserName: "carol", Email: "carol@local.domain", Created: ago(720)},
	}
	alice, bob, carol := authors[0].Id, authors[1].Id, authors[2].Id
	for _, a := range authors {
		if err := db.C("authors").Insert(a); err != nil {
			return alice, err
		}
	}

	story := stories.Story{
		Id:            bson.NewObjectId(),
		Title:         "My Story",
		Author:        alice,
		Collaborators: []stories.Collaborator{{Author: bob, Edit: true}},
		Created:       ago(240),
	}
	shared := stories.Story{
		Id:            bson.NewObjectId(),
		Title:         "Night Shift",
		Author:        carol,
		Collaborators: []stories.Collaborator{{Author: alice, Edit: false}},
		Created:       ago(200),
	}
	for _, s := range []stories.Story{story, shared} {
		if err := db.C("stories").Insert(s); err != nil {
			return alice, err
		}
	}

	page := pages.Page{
		Id:       bson.NewObjectId(),
		Story:    story.Id,
		Author:   bob,
		Title:    "Chapter one",
		Contents: []pages.Content{{Id: bson.NewObjectId(), Type: "audio", Url: "https://cdn.local.domain/one.mp3"}},
		Created:  ago(48),
	}
	if err := db.C("pages").Insert(page); err != nil {
		return alice, err
	}

	edge := follows.Edge{Id: bson.NewObjectId(), Follower: carol, Followed: alice, Active: true, Created: ago(30)}
	if err := db.C("follows").Insert(edge); err != nil {
		return alice, err
	}

	comment := comments.Comment{Id: bson.NewObjectId(), Page: page.Id, Story: story.Id, Author: bob, Content: "Loved it", Active: true, Created: ago(20)}
	if err := db.C("comments").Insert(comment); err != nil {
		return alice, err
	}

	invite := invites.Group{Id: bson.NewObjectId(), Group: bson.NewObjectId(), Author: carol, Invited: invites.NewTarget("", "alice@local.domain"), Created: ago(10)}
	if err := db.C("group_invites").Insert(invite); err != nil {
		return alice, err
	}

	tracked := []activity.Activity{
		{Type: activity.CollaborationAdded, Author: alice, Data: activity.Data{StoryId: story.Id, CollaboratorId: bob}, Created: ago(72)},
		{Type: activity.NewPage, Author: bob, Data: activity.Data{StoryId: story.Id, PageId: page.Id, Contents: []activity.ContentRef{{Id: page.Contents[0].Id, Type: "audio"}}}, Created: ago(48)},
		{Type: activity.NewFollower, Author: carol, To: alice, Data: activity.Data{Message: "carol started following you"}, Created: ago(30)},
		{Type: activity.NewComment, Author: bob, To: alice, Data: activity.Data{StoryId: story.Id, PageId: page.Id, Message: "bob commented on Chapter one"}, Created: ago(20)},
		{Type: activity.NewPage, Author: carol, Data: activity.Data{StoryId: shared.Id}, Created: ago(5)},
	}
	for _, a := range tracked {
		if err := activity.Track(d, a); err != nil {
			return alice, err
		}
	}
	return alice, nil
}
