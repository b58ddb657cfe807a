package common

import (
	"testing"
	"time"

	"gopkg.in/mgo.v2/bson"
)

type flagged bool

func (f flagged) IsVisible() bool { return bool(f) }

func TestOnlyVisible(t *testing.T) {
	list := OnlyVisible([]flagged{true, false, true})
	if len(list) != 2 {
		t.Errorf("expected 2 visible entities, got %d", len(list))
	}
}

func TestIDSet(t *testing.T) {
	a, b := bson.NewObjectId(), bson.NewObjectId()
	list := IDSet(a, b, a, bson.ObjectId(""), b)
	if len(list) != 2 || list[0] != a || list[1] != b {
		t.Errorf("unexpected set %v", list)
	}
}

func TestByScope(t *testing.T) {
	since := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	var tests = []struct {
		scopes []Scope
		keys   int
	}{
		{[]Scope{}, 0},
		{[]Scope{CreatedSince(time.Time{}, true)}, 0},
		{[]Scope{CreatedSince(since, false), WithinID([]bson.ObjectId{bson.NewObjectId()})}, 2},
	}

	for _, test := range tests {
		if q := ByScope(test.scopes...); len(q) != test.keys {
			t.Errorf("%v: expected %d keys", q, test.keys)
		}
	}

	q := ByScope(CreatedSince(since, false))
	if op, ok := q["created_at"].(bson.M); !ok || op["$gt"] != since {
		t.Errorf("watermark scope should be exclusive, got %v", q)
	}
}
