package common

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Scope narrows down a query document.
type Scope func(q bson.M)

// ByScope builds a query document out of the given scopes.
func ByScope(scopes ...Scope) bson.M {
	q := bson.M{}
	for _, fn := range scopes {
		fn(q)
	}
	return q
}

// WithinID matches documents whose _id is in the list.
func WithinID(list []bson.ObjectId) Scope {
	return FieldIn("_id", list)
}

// FieldIn matches documents whose field value is in the list.
func FieldIn(field string, list []bson.ObjectId) Scope {
	return func(q bson.M) {
		q[field] = bson.M{"$in": list}
	}
}

// CreatedSince matches documents created after t. Zero t adds no constraint.
// Inclusive is used by day windows, exclusive by watermarks.
func CreatedSince(t time.Time, inclusive bool) Scope {
	return func(q bson.M) {
		if t.IsZero() {
			return
		}
		op := "$gt"
		if inclusive {
			op = "$gte"
		}
		q["created_at"] = bson.M{op: t}
	}
}

// IDSet deduplicates ids keeping the first occurrence order.
func IDSet(ids ...bson.ObjectId) []bson.ObjectId {
	seen := make(map[bson.ObjectId]struct{}, len(ids))
	list := make([]bson.ObjectId, 0, len(ids))
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		list = append(list, id)
	}
	return list
}
