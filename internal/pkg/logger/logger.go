package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it.
// format is "text" or "json".
func Setup(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}
