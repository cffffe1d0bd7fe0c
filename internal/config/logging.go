package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Logging configures the package-level logrus logger.
func Logging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(lvl)
}
