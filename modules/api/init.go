package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	"github.com/tryanzu/storyfeed/handle"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Dependencies ModuleDI
	Feed         handle.FeedAPI
	Middlewares  handle.MiddlewareAPI
}

type ModuleDI struct {
	Config *config.Config `inject:""`
}

// Router builds the gin engine with every middleware and route.
func (module *Module) Router() *gin.Engine {
	debug := module.Dependencies.Config.UString("environment", "development") == "development"
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(module.Middlewares.RequestLog())
	router.Use(module.Middlewares.ErrorTracking(debug))
	router.Use(module.Middlewares.CORS())

	v1 := router.Group("/v1")
	v1.Use(module.Middlewares.Authorization())

	authorized := v1.Group("")
	authorized.Use(module.Middlewares.NeedAuthorization())
	module.Feed.Routes(authorized)

	return router
}

func (module *Module) Run(bindTo string) {
	srv := &http.Server{
		Addr:    bindTo,
		Handler: module.Router(),
	}

	// Start the http server as an isolated goroutine.
	go func() {
		log.Infof("listening on %s", bindTo)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Info("Server exiting")
}

func (module *Module) Populate(g *inject.Graph) {
	err := g.Provide(
		&inject.Object{Value: &module.Dependencies},
		&inject.Object{Value: &module.Feed},
		&inject.Object{Value: &module.Middlewares},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Populate the DI with the instances
	if err := g.Populate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
