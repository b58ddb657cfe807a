package handle

import (
	"context"
	"errors"

	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	"github.com/tryanzu/storyfeed/board/feed"
	"github.com/tryanzu/storyfeed/core/config"
	"github.com/tryanzu/storyfeed/core/paginate"
	"github.com/tryanzu/storyfeed/core/user"
	"gopkg.in/mgo.v2/bson"
)

type feedStore interface {
	feed.Store
	Viewer(ctx context.Context, id bson.ObjectId) (user.Viewer, error)
}

type FeedAPI struct {
	Store        feedStore      `inject:""`
	Rules        *config.Config `inject:""`
	ErrorService *raven.Client  `inject:""`
}

func (di *FeedAPI) engine() (*feed.Engine, config.Rules) {
	rules := di.Rules.Rules()
	return feed.New(di.Store, feed.Options{Rules: rules}), rules
}

func (di *FeedAPI) viewer(c *gin.Context) (user.Viewer, bool) {
	id := c.MustGet("userID").(bson.ObjectId)
	viewer, err := di.Store.Viewer(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatusJSON(404, gin.H{"status": "error", "message": "Viewer not found"})
		return viewer, false
	}
	return viewer, true
}

func (di *FeedAPI) fail(c *gin.Context, err error) {
	var v *feed.ValidationError
	if errors.As(err, &v) {
		c.AbortWithStatusJSON(400, gin.H{"status": "error", "field": v.Field, "message": v.Message})
		return
	}
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}

	log.Errorf("feed request failed	path=%s request=%s err=%v", c.Request.URL.Path, c.GetString("request_id"), err)
	if di.ErrorService != nil {
		di.ErrorService.CaptureError(err, map[string]string{"path": c.FullPath()})
	}
	c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "Could not load feed"})
}

func respond[T any](di *FeedAPI, c *gin.Context, limit int, items []T, err error) {
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(200, paginate.Paginate(items, pageFrom(c, limit)))
}

// Activities serves GET /v1/feed/:category
func (di *FeedAPI) Activities(c *gin.Context) {
	viewer, ok := di.viewer(c)
	if !ok {
		return
	}
	engine, rules := di.engine()
	entries, err := engine.Activities(c.Request.Context(), c.Param("category"), viewer, filtersFrom(c))
	respond(di, c, rules.PageLimit, entries, err)
}

// ActivitiesByDays serves GET /v1/feed/:category/days/:days
func (di *FeedAPI) ActivitiesByDays(c *gin.Context) {
	days, err := daysFrom(c.Param("days"))
	if err != nil {
		di.fail(c, err)
		return
	}
	viewer, ok := di.viewer(c)
	if !ok {
		return
	}
	engine, rules := di.engine()
	entries, err := engine.ActivitiesByDays(c.Request.Context(), c.Param("category"), viewer, valueOr(days, 0), filtersFrom(c))
	respond(di, c, rules.PageLimit, entries, err)
}

// NewFollowers serves GET /v1/followers/new
func (di *FeedAPI) NewFollowers(c *gin.Context) {
	days, err := daysFrom(c.Query("days"))
	if err != nil {
		di.fail(c, err)
		return
	}
	viewer, ok := di.viewer(c)
	if !ok {
		return
	}
	engine, rules := di.engine()
	ids, err := engine.NewFollowers(c.Request.Context(), viewer, valueOr(days, 0))
	respond(di, c, rules.PageLimit, ids, err)
}

// NewComments serves GET /v1/comments/new/:category
func (di *FeedAPI) NewComments(c *gin.Context) {
	days, err := daysFrom(c.Query("days"))
	if err != nil {
		di.fail(c, err)
		return
	}
	viewer, ok := di.viewer(c)
	if !ok {
		return
	}
	engine, rules := di.engine()
	list, err := engine.NewComments(c.Request.Context(), c.Param("category"), viewer, days)
	respond(di, c, rules.PageLimit, list, err)
}

// NewInvites serves GET /v1/invites/new
func (di *FeedAPI) NewInvites(c *gin.Context) {
	days, err := daysFrom(c.Query("days"))
	if err != nil {
		di.fail(c, err)
		return
	}
	viewer, ok := di.viewer(c)
	if !ok {
		return
	}
	engine, rules := di.engine()
	list, err := engine.NewInvites(c.Request.Context(), viewer, valueOr(days, 0))
	respond(di, c, rules.PageLimit, list, err)
}

func valueOr(n *int, fallback int) int {
	if n == nil {
		return fallback
	}
	return *n
}

// Routes mounts the feed endpoints on an authorized group.
func (di *FeedAPI) Routes(r gin.IRoutes) {
	r.GET("/feed/:category", di.Activities)
	r.GET("/feed/:category/days/:days", di.ActivitiesByDays)
	r.GET("/followers/new", di.NewFollowers)
	r.GET("/comments/new/:category", di.NewComments)
	r.GET("/invites/new", di.NewInvites)
}
