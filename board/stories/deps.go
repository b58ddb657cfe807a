package stories

import (
	"github.com/go-redis/redis/v8"
	"gopkg.in/mgo.v2"
)

type deps interface {
	Mgo() *mgo.Database
}

type cacheDeps interface {
	deps
	Cache() *redis.Client
}
