package activity

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/mgo.v2/bson"
)

func TestQueryDocument(t *testing.T) {
	viewer := bson.NewObjectId()
	story := bson.NewObjectId()
	since := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	Convey("Activity queries", t, func() {
		Convey("an empty query has no source", func() {
			So(Query{Since: since}.Empty(), ShouldBeTrue)
			So(Query{Recipient: viewer}.Empty(), ShouldBeFalse)
		})

		Convey("timeline reads by recipient with an exclusive watermark", func() {
			doc := Query{Recipient: viewer, Since: since}.Document()
			So(doc["to"], ShouldResemble, viewer)
			So(doc["created_at"], ShouldResemble, bson.M{"$gt": since})
		})

		Convey("social combines authors and the viewer exclusion", func() {
			authors := []bson.ObjectId{bson.NewObjectId()}
			doc := Query{Authors: authors, ExcludeAuthor: viewer, Since: since, Inclusive: true}.Document()
			So(doc["author"], ShouldResemble, bson.M{"$in": authors, "$ne": viewer})
			So(doc["created_at"], ShouldResemble, bson.M{"$gte": since})
		})

		Convey("collaboration matches stories or the viewer as subject", func() {
			doc := Query{Stories: []bson.ObjectId{story}, Subject: viewer}.Document()
			So(doc["$or"], ShouldResemble, []bson.M{
				{"data.storyId": bson.M{"$in": []bson.ObjectId{story}}},
				{"data.collaboratorId": viewer},
			})
			_, bounded := doc["created_at"]
			So(bounded, ShouldBeFalse)
		})
	})
}

func TestListIDs(t *testing.T) {
	a, b, s := bson.NewObjectId(), bson.NewObjectId(), bson.NewObjectId()
	list := List{
		{Author: a, Data: Data{StoryId: s, CollaboratorId: b}},
		{Author: b},
	}

	if ids := list.StoryIDs(); len(ids) != 1 || ids[0] != s {
		t.Errorf("unexpected story ids %v", ids)
	}
	if ids := list.AuthorIDs(); len(ids) != 3 {
		t.Errorf("unexpected author ids %v", ids)
	}
}
