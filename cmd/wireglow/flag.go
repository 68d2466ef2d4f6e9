package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	configFlag  = flag.String("config", "", "TOML settings file")
	cuboidsFlag = flag.Int("cuboids", 100, "number of cuboid outlines")
	widthFlag   = flag.Int("width", 800, "window width")
	heightFlag  = flag.Int("height", 600, "window height")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}
