package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if !l {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr, "")
}

/*
newSlogLogger takes a level name and a file path and returns the logger
handed to the classifier. Logs go to STDERR as text, or as JSON to the file
when a path is given, rotating it once it grows over 10 MB.
*/
func newSlogLogger(level, file string) (*slog.Logger, error) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info", "":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn or error", level)
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if file == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}
	fileWriter := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return slog.New(slog.NewJSONHandler(fileWriter, opts)), nil
}
