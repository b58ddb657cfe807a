package feed

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/tidwall/buntdb"
	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/comments"
	"github.com/tryanzu/storyfeed/board/follows"
	"github.com/tryanzu/storyfeed/board/invites"
	"github.com/tryanzu/storyfeed/board/pages"
	"github.com/tryanzu/storyfeed/board/stories"
	"github.com/tryanzu/storyfeed/core/common"
	"github.com/tryanzu/storyfeed/core/user"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// Store is every read the engine performs. Implementations return only
// visible entities and propagate failures unchanged.
type Store interface {
	Activities(ctx context.Context, q activity.Query) (activity.List, error)
	Comments(ctx context.Context, q comments.Query) (comments.Comments, error)
	FollowEdges(ctx context.Context, q follows.Query) (follows.Edges, error)
	Invites(ctx context.Context, q invites.Query) (invites.List, error)
	Collaborations(ctx context.Context, author bson.ObjectId, edit bool) (stories.Stories, error)
	OwnStories(ctx context.Context, author bson.ObjectId) (stories.Stories, error)
	Stories(ctx context.Context, ids []bson.ObjectId) (stories.Stories, error)
	Pages(ctx context.Context, storyIDs []bson.ObjectId) (pages.Pages, error)
	Authors(ctx context.Context, ids []bson.ObjectId) ([]user.Summary, error)
}

type deps interface {
	Mgo() *mgo.Database
	BuntDB() *buntdb.DB
	Cache() *redis.Client
}

// MongoStore reads through the board finders, each query on its own
// session copy.
type MongoStore struct {
	Deps deps
}

func NewMongoStore(d deps) MongoStore {
	return MongoStore{Deps: d}
}

type session struct {
	deps
	db *mgo.Database
}

func (s session) Mgo() *mgo.Database {
	return s.db
}

// query runs fn on its own session copy. The session is released when fn
// returns, even if ctx gave up on it first.
func query[T any](ctx context.Context, m MongoStore, fn func(s session) (T, error)) (T, error) {
	return await(ctx, func() (T, error) {
		db := m.Deps.Mgo()
		copied := db.Session.Copy()
		defer copied.Close()
		return fn(session{deps: m.Deps, db: db.With(copied)})
	})
}

// await returns as soon as ctx is done. An abandoned fn keeps running in
// the background and its result is discarded.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	go func() {
		value, err := fn()
		done <- result{value, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

func (m MongoStore) Activities(ctx context.Context, q activity.Query) (activity.List, error) {
	return query(ctx, m, func(s session) (activity.List, error) {
		return activity.FindSince(s, q)
	})
}

func (m MongoStore) Comments(ctx context.Context, q comments.Query) (comments.Comments, error) {
	list, err := query(ctx, m, func(s session) (comments.Comments, error) {
		return comments.FindSince(s, q)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) FollowEdges(ctx context.Context, q follows.Query) (follows.Edges, error) {
	list, err := query(ctx, m, func(s session) (follows.Edges, error) {
		return follows.FindList(s, q)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) Invites(ctx context.Context, q invites.Query) (invites.List, error) {
	return query(ctx, m, func(s session) (invites.List, error) {
		return invites.FindList(s, q)
	})
}

func (m MongoStore) Collaborations(ctx context.Context, author bson.ObjectId, edit bool) (stories.Stories, error) {
	list, err := query(ctx, m, func(s session) (stories.Stories, error) {
		return stories.FindCollaborations(s, author, edit)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) OwnStories(ctx context.Context, author bson.ObjectId) (stories.Stories, error) {
	list, err := query(ctx, m, func(s session) (stories.Stories, error) {
		return stories.FindOwned(s, author)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) Stories(ctx context.Context, ids []bson.ObjectId) (stories.Stories, error) {
	list, err := query(ctx, m, func(s session) (stories.Stories, error) {
		return stories.FindCached(ctx, s, ids...)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) Pages(ctx context.Context, storyIDs []bson.ObjectId) (pages.Pages, error) {
	list, err := query(ctx, m, func(s session) (pages.Pages, error) {
		return pages.FindByStories(s, storyIDs...)
	})
	return common.OnlyVisible(list), err
}

func (m MongoStore) Authors(ctx context.Context, ids []bson.ObjectId) ([]user.Summary, error) {
	return query(ctx, m, func(s session) ([]user.Summary, error) {
		return user.FindSummaries(s, ids...)
	})
}

// Viewer loads the feed context of an active author.
func (m MongoStore) Viewer(ctx context.Context, id bson.ObjectId) (user.Viewer, error) {
	author, err := query(ctx, m, func(s session) (user.Author, error) {
		return user.FindId(s, id)
	})
	if err != nil {
		return user.Viewer{}, err
	}
	if !author.IsVisible() {
		return user.Viewer{}, user.UserNotFound
	}
	return author.Viewer(), nil
}
