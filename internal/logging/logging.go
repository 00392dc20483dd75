package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging создаёт JSON-логгер. Неизвестный уровень заменяется на info.
func SetupLogging(level string) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: logLevel,
		Hooks: make(logrus.LevelHooks),
	}

	return &logger
}
