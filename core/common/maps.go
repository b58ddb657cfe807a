package common

import (
	"gopkg.in/mgo.v2/bson"
)

// UsersStringMap is just map of id -> username (cache purposes).
type UsersStringMap map[bson.ObjectId]string

// Missing returns the ids not present in the map.
func (m UsersStringMap) Missing(ids []bson.ObjectId) []bson.ObjectId {
	list := []bson.ObjectId{}
	for _, id := range ids {
		if _, exists := m[id]; !exists {
			list = append(list, id)
		}
	}
	return list
}
