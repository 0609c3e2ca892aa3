package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process logger and makes it the logrus default.
func SetupLogging(level string) (*logrus.Logger, error) {
	parsed := logrus.InfoLevel
	if level != "" {
		var err error
		parsed, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logrus.ParseLevel: %w", err)
		}
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(parsed)

	logrus.SetFormatter(logger.Formatter)
	logrus.SetOutput(logger.Out)
	logrus.SetLevel(parsed)

	return logger, nil
}
