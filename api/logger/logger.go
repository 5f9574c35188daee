package logger

import (
	"github.com/lordralex/ballot/api/env"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"sync"
)

// Printer is what Out, Err and Debug hand back; each is bound to a single level.
type Printer interface {
	Print(args ...interface{})
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

type leveled struct {
	entry *logrus.Entry
	level logrus.Level
}

func (l leveled) Print(args ...interface{}) {
	l.entry.Log(l.level, args...)
}

func (l leveled) Printf(format string, args ...interface{}) {
	l.entry.Logf(l.level, format, args...)
}

func (l leveled) Println(args ...interface{}) {
	l.entry.Logln(l.level, args...)
}

var base = logrus.New()
var logFile *os.File
var once sync.Once

var errorLevels = []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
var outLevels = []logrus.Level{logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}

// outputHook writes entries of its levels to one writer; errors and warnings go to
// stderr, everything else to stdout.
type outputHook struct {
	writer io.Writer
	levels []logrus.Level
}

func (h *outputHook) Levels() []logrus.Level {
	return h.levels
}

func (h *outputHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Bytes()
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

func parseLevel(value string) logrus.Level {
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func configure(l *logrus.Logger, level logrus.Level, out, errOut io.Writer) {
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(io.Discard)
	l.ReplaceHooks(logrus.LevelHooks{})
	l.AddHook(&outputHook{writer: out, levels: outLevels})
	l.AddHook(&outputHook{writer: errOut, levels: errorLevels})
}

func setup() {
	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr

	var fileErr error
	if filename := env.GetOr("log.file", "output.log"); filename != "-" {
		logFile, fileErr = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if fileErr == nil {
			out = io.MultiWriter(os.Stdout, logFile)
			errOut = io.MultiWriter(os.Stderr, logFile)
		} else {
			logFile = nil
		}
	}

	configure(base, parseLevel(env.GetOr("log.level", "info")), out, errOut)
	if fileErr != nil {
		base.Errorf("Error loading log file: %s", fileErr.Error())
	}
}

func get() *logrus.Logger {
	once.Do(setup)
	return base
}

func Close() error {
	if logFile == nil {
		return nil
	}
	return logFile.Close()
}

func Out() Printer {
	return leveled{entry: logrus.NewEntry(get()), level: logrus.InfoLevel}
}

func Err() Printer {
	return leveled{entry: logrus.NewEntry(get()), level: logrus.ErrorLevel}
}

func Debug() Printer {
	return leveled{entry: logrus.NewEntry(get()), level: logrus.DebugLevel}
}

// WithFields gives structured context for the noisier paths (transitions, requests).
func WithFields(fields logrus.Fields) *logrus.Entry {
	return get().WithFields(fields)
}
