package logging

import "log/slog"

// LevelTrace is more verbose than debug. It is enabled with -vvv.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps the count of -v flags to a log level.
//
//	0 (or negative): warn
//	1: info
//	2: debug
//	3+: trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
