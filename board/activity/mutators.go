package activity

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Track activity.
func Track(d deps, activity Activity) (err error) {
	if !activity.ID.Valid() {
		activity.ID = bson.NewObjectId()
	}
	if activity.Created.IsZero() {
		activity.Created = time.Now()
	}
	activity.Updated = activity.Created
	err = d.Mgo().C("activities").Insert(&activity)
	return
}
