package pages

import (
	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

// FindByStories returns every page of the given stories.
func FindByStories(d deps, stories ...bson.ObjectId) (list Pages, err error) {
	list = Pages{}
	if len(stories) == 0 {
		return
	}
	err = d.Mgo().C("pages").Find(common.ByScope(common.FieldIn("story", stories))).All(&list)
	return
}
