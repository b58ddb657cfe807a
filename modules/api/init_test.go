package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olebedev/config"
	. "github.com/smartystreets/goconvey/convey"
	rules "github.com/tryanzu/storyfeed/core/config"
	"github.com/tryanzu/storyfeed/handle"
)

func TestRouter(t *testing.T) {
	cfg, err := config.ParseJson(`{"environment": "testing", "application": {"secret": "s3cr3t"}}`)
	if err != nil {
		t.Fatal(err)
	}

	module := Module{
		Dependencies: ModuleDI{Config: cfg},
		Middlewares:  handle.MiddlewareAPI{ConfigService: cfg},
		Feed:         handle.FeedAPI{Rules: rules.New()},
	}
	router := module.Router()

	Convey("Preflight requests are answered by the CORS middleware", t, func() {
		req := httptest.NewRequest("OPTIONS", "/v1/feed/timeline", nil)
		req.Header.Set("Origin", "https://stories.local.domain")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://stories.local.domain")
		So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
	})

	Convey("Feeds need an authenticated viewer", t, func() {
		for _, path := range []string{"/v1/feed/timeline", "/v1/followers/new", "/v1/comments/new/social", "/v1/invites/new"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		}
	})
}
