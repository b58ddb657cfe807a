package comments

import (
	"errors"

	"gopkg.in/mgo.v2/bson"
)

var CommentNotFound = errors.New("Comment has not been found by given criteria.")

func FindId(deps Deps, id bson.ObjectId) (comment Comment, err error) {
	err = deps.Mgo().C("comments").FindId(id).One(&comment)
	if err != nil {
		return comment, CommentNotFound
	}
	return
}

// FindSince returns the comments matched by q, newest first.
func FindSince(deps Deps, q Query) (list Comments, err error) {
	list = Comments{}
	if len(q.Pages) == 0 {
		return
	}
	err = deps.Mgo().C("comments").Find(q.Document()).Sort("-created_at").All(&list)
	return
}
