package feed

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/comments"
	"github.com/tryanzu/storyfeed/board/follows"
	"github.com/tryanzu/storyfeed/board/invites"
	"github.com/tryanzu/storyfeed/board/stories"
	"github.com/tryanzu/storyfeed/core/common"
	"github.com/tryanzu/storyfeed/core/config"
	"github.com/tryanzu/storyfeed/core/user"
	"golang.org/x/sync/errgroup"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("feed")

// Feed categories.
const (
	Timeline      = "timeline"
	Social        = "social"
	Collaboration = "collaboration"
)

// Entry is an activity as rendered for one viewer.
type Entry struct {
	activity.Activity
	Kind    string `json:"kind"`
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

type Options struct {
	Rules config.Rules
	Now   func() time.Time
}

// Engine answers feed queries for a single rules snapshot.
type Engine struct {
	store      Store
	recency    Recency
	visibility Visibility
	tags       Tags
}

func New(store Store, opts Options) *Engine {
	return &Engine{
		store:      store,
		recency:    NewRecency(opts.Rules.DaysCheck, opts.Now),
		visibility: DefaultVisibility().Merge(opts.Rules.Visibility),
		tags:       NewTags(opts.Rules.Tags.Activities, opts.Rules.Tags.Contents),
	}
}

func ValidateCategory(category string) error {
	switch category {
	case Timeline, Social, Collaboration:
		return nil
	}
	return invalid("category", "unsupported feed category %q", category)
}

// Activities returns what happened in a category since the viewer last
// checked it.
func (e *Engine) Activities(ctx context.Context, category string, viewer user.Viewer, filters Filters) ([]Entry, error) {
	return e.activities(ctx, category, viewer, Watermark(viewer.ActivityWatermark(category)), filters)
}

// ActivitiesByDays returns what happened in a category during the last days.
func (e *Engine) ActivitiesByDays(ctx context.Context, category string, viewer user.Viewer, days int, filters Filters) ([]Entry, error) {
	return e.activities(ctx, category, viewer, e.recency.Days(days), filters)
}

func (e *Engine) activities(ctx context.Context, category string, viewer user.Viewer, window Window, filters Filters) ([]Entry, error) {
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	selector, err := e.tags.Compile(filters)
	if err != nil {
		return nil, err
	}

	raw, err := e.collect(ctx, category, viewer.ID, window)
	if err != nil {
		return nil, err
	}

	list := activity.List{}
	for _, a := range raw {
		if window.Keep(a.Created) {
			list = append(list, a)
		}
	}

	lookup, err := e.references(ctx, list)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, a := range list {
		role := ClassifyRole(a, viewer.ID)
		if !e.visibility.Visible(a.Type, role) {
			continue
		}
		if !selector.Match(a.Type, a.Data.Contents) {
			continue
		}
		entries = append(entries, lookup.resolve(a, role, viewer.ID))
	}
	return entries, nil
}

// collect reads the raw activities of a category.
func (e *Engine) collect(ctx context.Context, category string, viewer bson.ObjectId, window Window) (activity.List, error) {
	q := activity.Query{Since: window.Since, Inclusive: window.Inclusive}
	switch category {
	case Timeline:
		q.Recipient = viewer
	case Social:
		authors, err := e.socialAuthors(ctx, viewer)
		if err != nil {
			return nil, err
		}
		q.Authors = authors
		q.ExcludeAuthor = viewer
	case Collaboration:
		list, err := e.collaborationStories(ctx, viewer)
		if err != nil {
			return nil, err
		}
		q.Stories = common.IDSet(list.IDs()...)
		q.Subject = viewer
	}

	if q.Empty() {
		return activity.List{}, nil
	}
	return e.store.Activities(ctx, q)
}

// socialAuthors are the accounts the viewer follows plus the owners of
// stories shared with the viewer read-only.
func (e *Engine) socialAuthors(ctx context.Context, viewer bson.ObjectId) ([]bson.ObjectId, error) {
	var (
		edges  follows.Edges
		shared stories.Stories
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		edges, err = e.store.FollowEdges(gctx, follows.Query{Follower: viewer, ActiveOnly: true})
		return
	})
	g.Go(func() (err error) {
		shared, err = e.store.Collaborations(gctx, viewer, false)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	authors := append(edges.Followed(), shared.Authors()...)
	return withoutID(common.IDSet(authors...), viewer), nil
}

// collaborationStories are the stories the viewer may edit, owned ones
// included.
func (e *Engine) collaborationStories(ctx context.Context, viewer bson.ObjectId) (stories.Stories, error) {
	var editable, owned stories.Stories
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		editable, err = e.store.Collaborations(gctx, viewer, true)
		return
	})
	g.Go(func() (err error) {
		owned, err = e.store.OwnStories(gctx, viewer)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(owned, editable...), nil
}

// references loads the stories and usernames needed to render list.
func (e *Engine) references(ctx context.Context, list activity.List) (refs, error) {
	r := refs{stories: map[bson.ObjectId]stories.Story{}, names: map[bson.ObjectId]string{}}
	if len(list) == 0 {
		return r, nil
	}

	storyIDs := common.IDSet(list.StoryIDs()...)
	if len(storyIDs) > 0 {
		found, err := e.store.Stories(ctx, storyIDs)
		if err != nil {
			return r, err
		}
		r.stories = found.Map()
	}

	ids := list.AuthorIDs()
	for _, s := range r.stories {
		ids = append(ids, s.Participants()...)
	}
	summaries, err := e.store.Authors(ctx, common.IDSet(ids...))
	if err != nil {
		return r, err
	}
	for _, s := range summaries {
		r.names[s.Id] = s.UserName
	}
	return r, nil
}

// NewFollowers returns who started following the viewer during the last days.
func (e *Engine) NewFollowers(ctx context.Context, viewer user.Viewer, days int) ([]bson.ObjectId, error) {
	window := e.recency.Days(days)
	edges, err := e.store.FollowEdges(ctx, follows.Query{
		Followed:   viewer.ID,
		Since:      window.Since,
		Inclusive:  window.Inclusive,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}

	recent := follows.Edges{}
	for _, edge := range common.OnlyVisible(edges) {
		if window.Keep(edge.Created) {
			recent = append(recent, edge)
		}
	}
	return withoutID(common.IDSet(recent.Followers()...), viewer.ID), nil
}

// NewComments returns comments others left on the pages of social or
// collaboration stories. Without days the viewer's comments watermark for
// the category bounds the read.
func (e *Engine) NewComments(ctx context.Context, category string, viewer user.Viewer, days *int) (comments.Comments, error) {
	var (
		list stories.Stories
		err  error
	)
	switch category {
	case Social:
		list, err = e.store.Collaborations(ctx, viewer.ID, false)
	case Collaboration:
		list, err = e.collaborationStories(ctx, viewer.ID)
	default:
		return nil, invalid("category", "comments are only tracked for %s and %s, got %q", Social, Collaboration, category)
	}
	if err != nil {
		return nil, err
	}

	storyIDs := common.IDSet(list.IDs()...)
	if len(storyIDs) == 0 {
		return comments.Comments{}, nil
	}
	pageList, err := e.store.Pages(ctx, storyIDs)
	if err != nil {
		return nil, err
	}
	pageList = common.OnlyVisible(pageList)
	if len(pageList) == 0 {
		return comments.Comments{}, nil
	}

	window := Watermark(viewer.CommentsWatermark(category))
	if days != nil {
		window = e.recency.Days(*days)
	}

	found, err := e.store.Comments(ctx, comments.Query{
		Pages:         pageList.IDs(),
		Since:         window.Since,
		Inclusive:     window.Inclusive,
		ActiveOnly:    true,
		ExcludeAuthor: viewer.ID,
	})
	if err != nil {
		return nil, err
	}

	recent := comments.Comments{}
	for _, c := range common.OnlyVisible(found) {
		if c.Author != viewer.ID && window.Keep(c.Created) {
			recent = append(recent, c)
		}
	}
	return recent, nil
}

// NewInvites returns pending invitations addressed to the viewer's account
// or email during the last days.
func (e *Engine) NewInvites(ctx context.Context, viewer user.Viewer, days int) (invites.List, error) {
	window := e.recency.Days(days)
	found, err := e.store.Invites(ctx, invites.Query{
		Invited:     viewer.ID,
		Email:       viewer.Email,
		Since:       window.Since,
		Inclusive:   window.Inclusive,
		PendingOnly: true,
	})
	if err != nil {
		return nil, err
	}

	recent := invites.List{}
	for _, inv := range found {
		if inv.Pending() && inv.Invited.Matches(viewer.ID, viewer.Email) && window.Keep(inv.Created) {
			recent = append(recent, inv)
		}
	}
	return recent, nil
}

func withoutID(list []bson.ObjectId, id bson.ObjectId) []bson.ObjectId {
	out := make([]bson.ObjectId, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
