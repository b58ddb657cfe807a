package deps

import (
	"os"

	"github.com/olebedev/config"
	"github.com/subosito/gotenv"
)

var ENV string

// EnvFile returns the path of the JSON service config.
func EnvFile() string {
	envfile := os.Getenv("ENV_FILE")
	if envfile == "" {
		envfile = "./env.json"
	}
	return envfile
}

func IgniteConfig(d Deps) (container Deps, err error) {
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warningf("could not load .env	err=%v", err)
	}

	cfg, err := config.ParseJsonFile(EnvFile())
	if err != nil {
		log.Error(err)
		return d, err
	}

	// Environment variables override file values, eg MONGO_URL for mongo.url
	cfg = cfg.Env()
	ENV = cfg.UString("environment", "development")

	d.ConfigProvider = cfg
	container = d
	return
}
