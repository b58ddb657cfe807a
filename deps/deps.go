package deps

import (
	"github.com/go-redis/redis/v8"
	"github.com/olebedev/config"
	"github.com/tidwall/buntdb"
	"gopkg.in/mgo.v2"
)

type Deps struct {
	ConfigProvider          *config.Config
	DatabaseSessionProvider *mgo.Session
	DatabaseProvider        *mgo.Database
	BuntProvider            *buntdb.DB
	CacheProvider           *redis.Client
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

func (d Deps) Mgo() *mgo.Database {
	return d.DatabaseProvider
}

func (d Deps) BuntDB() *buntdb.DB {
	return d.BuntProvider
}

// Cache may be nil when no redis address is configured.
func (d Deps) Cache() *redis.Client {
	return d.CacheProvider
}
