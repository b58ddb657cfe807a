package follows

import (
	"errors"
)

var ErrUnboundQuery = errors.New("follow query needs a follower or a followed account")

// FindList returns the follow edges matched by q, newest first.
func FindList(d deps, q Query) (list Edges, err error) {
	if !q.Follower.Valid() && !q.Followed.Valid() {
		return nil, ErrUnboundQuery
	}
	list = Edges{}
	err = d.Mgo().C("follows").Find(q.Document()).Sort("-created_at").All(&list)
	return
}
