package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/comments"
	"github.com/tryanzu/storyfeed/board/follows"
	"github.com/tryanzu/storyfeed/board/invites"
	"github.com/tryanzu/storyfeed/board/pages"
	"github.com/tryanzu/storyfeed/board/stories"
	rules "github.com/tryanzu/storyfeed/core/config"
	"github.com/tryanzu/storyfeed/core/user"
	"gopkg.in/mgo.v2/bson"
)

const secret = "test-secret"

var alice = bson.NewObjectId()

type stubStore struct {
	activities activity.List
	edges      follows.Edges
	err        error
}

func (s stubStore) Activities(ctx context.Context, q activity.Query) (activity.List, error) {
	list := activity.List{}
	for _, a := range s.activities {
		if a.To == q.Recipient {
			list = append(list, a)
		}
	}
	return list, s.err
}

func (s stubStore) Comments(context.Context, comments.Query) (comments.Comments, error) {
	return comments.Comments{}, s.err
}

func (s stubStore) FollowEdges(context.Context, follows.Query) (follows.Edges, error) {
	return s.edges, s.err
}

func (s stubStore) Invites(context.Context, invites.Query) (invites.List, error) {
	return invites.List{}, s.err
}

func (s stubStore) Collaborations(context.Context, bson.ObjectId, bool) (stories.Stories, error) {
	return stories.Stories{}, s.err
}

func (s stubStore) OwnStories(context.Context, bson.ObjectId) (stories.Stories, error) {
	return stories.Stories{}, s.err
}

func (s stubStore) Stories(context.Context, []bson.ObjectId) (stories.Stories, error) {
	return stories.Stories{}, s.err
}

func (s stubStore) Pages(context.Context, []bson.ObjectId) (pages.Pages, error) {
	return pages.Pages{}, s.err
}

func (s stubStore) Authors(context.Context, []bson.ObjectId) ([]user.Summary, error) {
	return []user.Summary{}, s.err
}

func (s stubStore) Viewer(ctx context.Context, id bson.ObjectId) (user.Viewer, error) {
	return user.Viewer{ID: id}, nil
}

func router(store feedStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg, err := config.ParseJson(`{"application": {"secret": "` + secret + `"}}`)
	if err != nil {
		panic(err)
	}

	mw := MiddlewareAPI{ConfigService: cfg}
	api := FeedAPI{Store: store, Rules: rules.New()}

	r := gin.New()
	r.Use(mw.ErrorTracking(true), mw.RequestLog())
	v1 := r.Group("/v1")
	v1.Use(mw.Authorization(), mw.NeedAuthorization())
	api.Routes(v1)
	return r
}

func token(t *testing.T, key string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": alice.Hex()}).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed
}

type page struct {
	Docs    []json.RawMessage `json:"docs"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Pages   int               `json:"pages"`
	Field   string            `json:"field"`
	Message string            `json:"message"`
}

func get(t *testing.T, r http.Handler, path, auth string) (int, page) {
	req := httptest.NewRequest("GET", path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body page
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: invalid body %q", path, w.Body.String())
	}
	return w.Code, body
}

func TestFeedRoutes(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	store := stubStore{
		activities: activity.List{
			{ID: bson.NewObjectId(), Type: activity.NewFollower, To: alice, Author: bson.NewObjectId(), Created: recent},
			{ID: bson.NewObjectId(), Type: activity.NewPage, To: alice, Author: bson.NewObjectId(), Created: recent.Add(-time.Minute)},
			{ID: bson.NewObjectId(), Type: activity.NewPage, To: bson.NewObjectId(), Created: recent},
		},
		edges: follows.Edges{{Follower: bson.NewObjectId(), Followed: alice, Active: true, Created: recent}},
	}
	r := router(store)
	auth := token(t, secret)

	var tests = []struct {
		path   string
		auth   string
		status int
		total  int
		field  string
	}{
		{"/v1/feed/timeline?limit=1", auth, 200, 2, ""},
		{"/v1/feed/timeline?types=pages", auth, 200, 1, ""},
		{"/v1/feed/timeline/days/7?sort=created:asc", auth, 200, 2, ""},
		{"/v1/followers/new?days=3", auth, 200, 1, ""},
		{"/v1/comments/new/collaboration", auth, 200, 0, ""},
		{"/v1/invites/new", auth, 200, 0, ""},
		{"/v1/feed/friends", auth, 400, 0, "category"},
		{"/v1/feed/timeline/days/week", auth, 400, 0, "days"},
		{"/v1/feed/timeline?contents=podcasts", auth, 400, 0, "contents"},
		{"/v1/comments/new/timeline", auth, 400, 0, "category"},
		{"/v1/feed/timeline", "", 401, 0, ""},
		{"/v1/feed/timeline", token(t, "other-secret"), 401, 0, ""},
	}

	for _, test := range tests {
		status, body := get(t, r, test.path, test.auth)
		if status != test.status {
			t.Errorf("%s: status %d != %d", test.path, status, test.status)
			continue
		}
		if body.Total != test.total || body.Field != test.field {
			t.Errorf("%s: total=%d field=%q, want total=%d field=%q", test.path, body.Total, body.Field, test.total, test.field)
		}
	}
}

func TestFeedPagination(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	store := stubStore{activities: activity.List{
		{ID: bson.NewObjectId(), Type: activity.NewPage, To: alice, Created: recent.Add(-time.Minute)},
		{ID: bson.NewObjectId(), Type: activity.NewFollower, To: alice, Created: recent},
	}}

	_, body := get(t, router(store), "/v1/feed/timeline?limit=1&page=2&sort=created:desc", token(t, secret))
	if body.Pages != 2 || body.Page != 2 || len(body.Docs) != 1 {
		t.Fatalf("unexpected envelope %+v", body)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(body.Docs[0], &doc); err != nil {
		t.Fatal(err)
	}
	if doc["type"] != activity.NewPage {
		t.Errorf("page 2 should hold the oldest activity, got %v", doc["type"])
	}
}

func TestFeedStoreFailure(t *testing.T) {
	status, body := get(t, router(stubStore{err: errors.New("no reachable servers")}), "/v1/feed/timeline", token(t, secret))
	if status != 500 || body.Message == "" {
		t.Errorf("expected a 500 with a message, got %d %+v", status, body)
	}
}
