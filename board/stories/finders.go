package stories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/op/go-logging"
	"github.com/tryanzu/storyfeed/core/common"
	"gopkg.in/mgo.v2/bson"
)

var StoryNotFound = errors.New("Story has not been found by given criteria.")

// CacheTTL bounds how stale a cached story may be.
const CacheTTL = 5 * time.Minute

var log = logging.MustGetLogger("stories")

func FindId(d deps, id bson.ObjectId) (story Story, err error) {
	err = d.Mgo().C("stories").FindId(id).One(&story)
	if err != nil {
		return story, StoryNotFound
	}
	return
}

func FindList(d deps, scopes ...common.Scope) (list Stories, err error) {
	list = Stories{}
	err = d.Mgo().C("stories").Find(common.ByScope(scopes...)).All(&list)
	return
}

// FindCollaborations returns the stories where author collaborates with the
// given edit permission.
func FindCollaborations(d deps, author bson.ObjectId, edit bool) (Stories, error) {
	return FindList(d, func(q bson.M) {
		q["collaborators"] = bson.M{"$elemMatch": bson.M{"author": author, "edit": edit}}
	})
}

// FindOwned returns the stories written by author.
func FindOwned(d deps, author bson.ObjectId) (Stories, error) {
	return FindList(d, func(q bson.M) {
		q["author"] = author
	})
}

// FindCached resolves stories through redis first. Cache failures fall back
// to the database.
func FindCached(ctx context.Context, d cacheDeps, ids ...bson.ObjectId) (Stories, error) {
	ids = common.IDSet(ids...)
	if len(ids) == 0 {
		return Stories{}, nil
	}

	cache := d.Cache()
	if cache == nil {
		return FindList(d, common.WithinID(ids))
	}

	keys := make([]string, len(ids))
	for n, id := range ids {
		keys[n] = cacheKey(id)
	}

	values, err := cache.MGet(ctx, keys...).Result()
	if err != nil {
		log.Warningf("story cache read failed	err=%v", err)
		return FindList(d, common.WithinID(ids))
	}

	found := Stories{}
	missing := []bson.ObjectId{}
	for n, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[n])
			continue
		}
		var s Story
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			missing = append(missing, ids[n])
			continue
		}
		found = append(found, s)
	}

	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := FindList(d, common.WithinID(missing))
	if err != nil {
		return nil, err
	}

	pipe := cache.Pipeline()
	for _, s := range fetched {
		b, err := json.Marshal(s)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(s.Id), b, CacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warningf("story cache write failed	err=%v", err)
	}

	return append(found, fetched...), nil
}

func cacheKey(id bson.ObjectId) string {
	return "story:" + id.Hex()
}
