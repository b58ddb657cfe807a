package config

import (
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/op/go-logging"
)

var (
	// C stands for config
	C *Config

	log = logging.MustGetLogger("config")
)

// Bootstrap loads the feed rules file and watches it for changes.
func Bootstrap(file string) error {
	C = New()
	if err := C.Merge(file); err != nil {
		return err
	}

	// Watch config file
	return C.WatchFile(file)
}

type Config struct {
	Reload chan bool

	mu      sync.RWMutex
	current Rules
}

func New() *Config {
	return &Config{
		Reload:  make(chan bool, 1),
		current: Defaults(),
	}
}

// Rules returns a snapshot of the current rules.
func (c *Config) Rules() Rules {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Copy()
}

// Merge decodes a TOML file on top of the built-in defaults and swaps it
// in as the current rules. Entries removed from the file are dropped.
func (c *Config) Merge(file string) error {
	merged := Defaults()
	if _, err := toml.DecodeFile(file, &merged); err != nil {
		log.Errorf("could not decode rules	file=%s err=%v", file, err)
		return err
	}

	c.mu.Lock()
	c.current = merged
	c.mu.Unlock()

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- true:
	default:
	}

	log.Infof("feed rules loaded	file=%s days_check=%d", file, merged.DaysCheck)
	return nil
}

func (c *Config) WatchFile(file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("modified file: %s", event.Name)
					c.Merge(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error(err)
			}
		}
	}()

	return watcher.Add(file)
}
