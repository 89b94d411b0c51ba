package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 建立模組 logger, debug 等級時使用 console 格式
// extra writer (例如 kafka) 會與 stdout 一起寫入
func New(moduler string, level string, extra ...io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if lvl <= zerolog.DebugLevel {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if len(extra) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, extra...)...)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("moduler", moduler).Logger()
}

// Nop 測試用
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
