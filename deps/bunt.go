package deps

import (
	"github.com/tidwall/buntdb"
)

func IgniteBuntDB(container Deps) (Deps, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return container, err
	}

	err = db.CreateIndex("usernames", "user:*:names", buntdb.IndexString)
	if err != nil {
		return container, err
	}
	container.BuntProvider = db
	return container, nil
}
