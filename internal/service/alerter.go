package service

import (
	"context"

	"github.com/rs/zerolog"
)

// LogAlerter 寫一筆 alert=true 的 error log
// logger 若帶有 kafka writer, 告警會同時送到 ops-alerts topic
type LogAlerter struct {
	logger *zerolog.Logger
}

func NewLogAlerter(logger *zerolog.Logger) *LogAlerter {
	return &LogAlerter{logger: logger}
}

func (a *LogAlerter) Alert(ctx context.Context, op string, key string, err error) {
	a.logger.Error().
		Err(err).
		Bool("alert", true).
		Str("op", op).
		Str("key", key).
		Msg("operation exhausted retries")
}
