package activity

// FindSince returns the activities matched by q, newest first. A query
// without sources matches nothing.
func FindSince(d deps, q Query) (list List, err error) {
	list = List{}
	if q.Empty() {
		return
	}
	err = d.Mgo().C("activities").Find(q.Document()).Sort("-created_at").All(&list)
	return
}
