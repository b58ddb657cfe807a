package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/comments"
	"github.com/tryanzu/storyfeed/board/follows"
	"github.com/tryanzu/storyfeed/board/invites"
	"github.com/tryanzu/storyfeed/board/pages"
	"github.com/tryanzu/storyfeed/board/stories"
	"github.com/tryanzu/storyfeed/core/user"
	"gopkg.in/mgo.v2/bson"
)

// memStore answers Store queries from slices.
type memStore struct {
	activities activity.List
	edges      follows.Edges
	stories    stories.Stories
	pages      pages.Pages
	comments   comments.Comments
	invites    invites.List
	authors    []user.Summary

	failing map[string]error
}

func (m *memStore) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.failing[op]
}

func after(created, since time.Time, inclusive bool) bool {
	if since.IsZero() {
		return true
	}
	return created.After(since) || (inclusive && created.Equal(since))
}

func contains(list []bson.ObjectId, id bson.ObjectId) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

func (m *memStore) Activities(ctx context.Context, q activity.Query) (activity.List, error) {
	if err := m.check(ctx, "activities"); err != nil {
		return nil, err
	}
	list := activity.List{}
	for _, a := range m.activities {
		if q.Recipient.Valid() && a.To != q.Recipient {
			continue
		}
		if len(q.Authors) > 0 && !contains(q.Authors, a.Author) {
			continue
		}
		if q.ExcludeAuthor.Valid() && a.Author == q.ExcludeAuthor {
			continue
		}
		if len(q.Stories) > 0 || q.Subject.Valid() {
			onStory := contains(q.Stories, a.Data.StoryId)
			concerns := q.Subject.Valid() && a.Data.CollaboratorId == q.Subject
			if !onStory && !concerns {
				continue
			}
		}
		if after(a.Created, q.Since, q.Inclusive) {
			list = append(list, a)
		}
	}
	return list, nil
}

func (m *memStore) Comments(ctx context.Context, q comments.Query) (comments.Comments, error) {
	if err := m.check(ctx, "comments"); err != nil {
		return nil, err
	}
	list := comments.Comments{}
	for _, c := range m.comments {
		if !contains(q.Pages, c.Page) || (q.ActiveOnly && !c.Active) {
			continue
		}
		if q.ExcludeAuthor.Valid() && c.Author == q.ExcludeAuthor {
			continue
		}
		if after(c.Created, q.Since, q.Inclusive) {
			list = append(list, c)
		}
	}
	return list, nil
}

func (m *memStore) FollowEdges(ctx context.Context, q follows.Query) (follows.Edges, error) {
	if err := m.check(ctx, "follows"); err != nil {
		return nil, err
	}
	list := follows.Edges{}
	for _, e := range m.edges {
		if q.Follower.Valid() && e.Follower != q.Follower {
			continue
		}
		if q.Followed.Valid() && e.Followed != q.Followed {
			continue
		}
		if q.ActiveOnly && !e.Active {
			continue
		}
		if after(e.Created, q.Since, q.Inclusive) {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *memStore) Invites(ctx context.Context, q invites.Query) (invites.List, error) {
	if err := m.check(ctx, "invites"); err != nil {
		return nil, err
	}
	return append(invites.List{}, m.invites...), nil
}

func (m *memStore) Collaborations(ctx context.Context, author bson.ObjectId, edit bool) (stories.Stories, error) {
	if err := m.check(ctx, "collaborations"); err != nil {
		return nil, err
	}
	list := stories.Stories{}
	for _, s := range m.stories {
		for _, c := range s.Collaborators {
			if c.Author == author && c.Edit == edit && s.IsVisible() {
				list = append(list, s)
				break
			}
		}
	}
	return list, nil
}

func (m *memStore) OwnStories(ctx context.Context, author bson.ObjectId) (stories.Stories, error) {
	if err := m.check(ctx, "owned"); err != nil {
		return nil, err
	}
	list := stories.Stories{}
	for _, s := range m.stories {
		if s.Author == author && s.IsVisible() {
			list = append(list, s)
		}
	}
	return list, nil
}

func (m *memStore) Stories(ctx context.Context, ids []bson.ObjectId) (stories.Stories, error) {
	if err := m.check(ctx, "stories"); err != nil {
		return nil, err
	}
	list := stories.Stories{}
	for _, s := range m.stories {
		if contains(ids, s.Id) && s.IsVisible() {
			list = append(list, s)
		}
	}
	return list, nil
}

func (m *memStore) Pages(ctx context.Context, storyIDs []bson.ObjectId) (pages.Pages, error) {
	if err := m.check(ctx, "pages"); err != nil {
		return nil, err
	}
	list := pages.Pages{}
	for _, p := range m.pages {
		if contains(storyIDs, p.Story) {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m *memStore) Authors(ctx context.Context, ids []bson.ObjectId) ([]user.Summary, error) {
	if err := m.check(ctx, "authors"); err != nil {
		return nil, err
	}
	list := []user.Summary{}
	for _, s := range m.authors {
		if contains(ids, s.Id) {
			list = append(list, s)
		}
	}
	return list, nil
}

func TestAwait(t *testing.T) {
	t.Run("cancel while the read blocks", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		go func() {
			<-started
			cancel()
		}()

		returned := make(chan error, 1)
		go func() {
			_, err := await(ctx, func() (int, error) {
				close(started)
				<-release
				return 1, nil
			})
			returned <- err
		}()

		select {
		case err := <-returned:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("await did not return after cancel")
		}
	})

	t.Run("cancelled before the read starts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		_, err := await(ctx, func() (int, error) {
			called = true
			return 1, nil
		})
		if !errors.Is(err, context.Canceled) || called {
			t.Errorf("expected no call and context.Canceled, got called=%v err=%v", called, err)
		}
	})

	t.Run("results pass through", func(t *testing.T) {
		value, err := await(context.Background(), func() (string, error) {
			return "ok", nil
		})
		if value != "ok" || err != nil {
			t.Errorf("unexpected result %q %v", value, err)
		}

		failed := errors.New("down")
		if _, err := await(context.Background(), func() (string, error) {
			return "", failed
		}); err != failed {
			t.Errorf("expected %v, got %v", failed, err)
		}
	})
}
