package nfcsnoop

import (
	"io"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Warn(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})

	ChildLogger(tags map[string]interface{}) Logger
}

var logger Logger
var loggerMu sync.Mutex

// SetLogLevel parses a logrus level name and applies it to the default logger.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}

	lg, ok := GetLogger().(*defaultLogger)
	if !ok {
		return errors.New("non-default logger, don't know how to set level")
	}
	lg.Entry.Logger.SetLevel(lvl)
	return nil
}

// SetLogFile sends the default logger to a size-rotated file instead of stderr.
func SetLogFile(path string) error {
	lg, ok := GetLogger().(*defaultLogger)
	if !ok {
		return errors.New("non-default logger, don't know how to set output")
	}

	lg.Entry.Logger.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	})
	return nil
}

func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func GetLogger() Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if logger == nil {
		logger = NewLogger(os.Stderr)
	}

	return logger
}

type defaultLogger struct {
	*logrus.Entry
}

// NewLogger builds a text logger without timestamps writing to w.
func NewLogger(w io.Writer) Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       w,
		Hooks:     make(logrus.LevelHooks),
	}

	return &defaultLogger{Entry: l.WithFields(map[string]interface{}{})}
}

func (d *defaultLogger) ChildLogger(ff map[string]interface{}) Logger {
	nl := &defaultLogger{d.Entry.WithFields(ff)}
	return nl
}
