package deps

import (
	"gopkg.in/mgo.v2"
)

func IgniteMongoDB(container Deps) (Deps, error) {
	url := container.Config().UString("mongo.url", "mongodb://localhost:27017")
	name := container.Config().UString("mongo.name", "storyfeed")

	session, err := mgo.Dial(url)
	if err != nil {
		log.Error(err)
		log.Info(url)
		return container, err
	}

	db := session.DB(name)

	// Ensure indexes backing the feed queries.
	indexes := map[string][][]string{
		"activities":    {{"to", "-created_at"}, {"author", "-created_at"}, {"data.storyId", "-created_at"}},
		"follows":       {{"followed", "-created_at"}, {"follower"}},
		"stories":       {{"author"}, {"collaborators.author"}},
		"pages":         {{"story"}},
		"comments":      {{"page", "-created_at"}},
		"invites":       {{"invited", "-created_at"}, {"email"}},
		"group_invites": {{"invited.author", "-created_at"}, {"invited.email"}},
	}
	for collection, keys := range indexes {
		for _, key := range keys {
			err := db.C(collection).EnsureIndex(mgo.Index{
				Key:        key,
				Background: true,
			})
			if err != nil {
				log.Warningf("could not ensure index	collection=%s key=%v err=%v", collection, key, err)
			}
		}
	}

	container.DatabaseSessionProvider = session
	container.DatabaseProvider = db

	return container, nil
}
