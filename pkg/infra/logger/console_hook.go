package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors formatted entries to stdout so container logs stay
// readable while the file writer keeps the durable copy. Only levels at or
// above minLevel are mirrored.
type ConsoleHook struct {
	levels []logrus.Level
}

func NewConsoleHook(minLevel logrus.Level) *ConsoleHook {
	var levels []logrus.Level
	for _, level := range logrus.AllLevels {
		if level <= minLevel {
			levels = append(levels, level)
		}
	}
	return &ConsoleHook{levels: levels}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return h.levels
}
