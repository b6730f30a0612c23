package main

import (
	"log/slog"
	"math"
	"os"
	"strconv"
)

var (
	logLevel slog.Level = calcLogLevel()
	bufSize  int        = calcBufSize()
)

func calcLogLevel() slog.Level {
	if e := os.Getenv("HUFARC_LOG"); e != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(e)); err != nil {
			panic("malformed HUFARC_LOG environment variable, should be debug, info, warn or error: " + e)
		}
		return l
	}
	return slog.LevelWarn
}

func calcBufSize() int {
	if e := os.Getenv("HUFARC_BUFKB"); e != "" {
		f, err := strconv.ParseFloat(e, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f > 1<<20 {
			panic("malformed HUFARC_BUFKB environment variable, should be a number of kilobytes: " + e)
		}
		return int(f * 1024)
	}
	return 64 * 1024 // fall back on 64 KiB
}
