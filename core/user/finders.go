package user

import (
	"errors"

	"github.com/tidwall/buntdb"
	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

var UserNotFound = errors.New("User has not been found by given criteria.")

func FindId(deps deps, id bson.ObjectId) (user Author, err error) {
	err = deps.Mgo().C("authors").FindId(id).One(&user)
	if err != nil {
		return user, UserNotFound
	}

	return
}

func FindList(deps deps, scopes ...common.Scope) (users Authors, err error) {
	err = deps.Mgo().C("authors").Find(common.ByScope(scopes...)).All(&users)
	return
}

// FindNames resolves usernames using the bunt cache first and the database
// for whatever is missing.
func FindNames(d deps, list ...bson.ObjectId) (common.UsersStringMap, error) {
	names := cachedNames(d.BuntDB(), list)
	missing := names.Missing(list)
	if len(missing) == 0 {
		return names, nil
	}

	users, err := FindList(d, common.WithinID(missing))
	if err != nil {
		return names, err
	}

	err = d.BuntDB().Update(users.UpdateBuntCache)
	if err != nil {
		return names, err
	}

	for _, u := range users {
		names[u.Id] = u.UserName
	}

	return names, nil
}

// FindSummaries returns the summary of every known author in ids order.
func FindSummaries(d deps, list ...bson.ObjectId) ([]Summary, error) {
	list = common.IDSet(list...)
	names, err := FindNames(d, list...)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(list))
	for _, id := range list {
		if name, exists := names[id]; exists {
			summaries = append(summaries, Summary{Id: id, UserName: name})
		}
	}
	return summaries, nil
}

func cachedNames(db *buntdb.DB, list []bson.ObjectId) common.UsersStringMap {
	names := common.UsersStringMap{}
	db.View(func(tx *buntdb.Tx) error {
		for _, id := range list {
			name, err := tx.Get("user:" + id.Hex() + ":names")
			if err != nil {
				continue
			}
			names[id] = name
		}
		return nil
	})
	return names
}
