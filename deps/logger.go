package deps

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("deps")

var (
	// Terminals get colored levels and the call site.
	devFormat = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:.4s} %{module}%{color:reset}	%{message}	%{shortfile}`,
	)

	// Log collectors get one uncolored line per record.
	prodFormat = logging.MustStringFormatter(
		`%{time:2006-01-02T15:04:05.000Z07:00} level=%{level} module=%{module} %{message}`,
	)
)

// logLevel picks the threshold: LOG_LEVEL wins, production defaults to INFO.
func logLevel(env, name string) logging.Level {
	if name != "" {
		if level, err := logging.LogLevel(name); err == nil {
			return level
		}
	}
	if env == "production" {
		return logging.INFO
	}
	return logging.DEBUG
}

func logFormat(env string) logging.Formatter {
	if env == "production" {
		return prodFormat
	}
	return devFormat
}

func IgniteLogger(container Deps) (Deps, error) {
	env := os.Getenv("ENV")
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), logFormat(env))
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logLevel(env, os.Getenv("LOG_LEVEL")), "")
	logging.SetBackend(leveled)
	return container, nil
}
