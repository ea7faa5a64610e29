package backend

import (
	"github.com/rs/zerolog/log"
)

// zerologAdapter направляет внутренние сообщения resty в общий логгер
type zerologAdapter struct{}

func (zerologAdapter) Errorf(format string, v ...interface{}) {
	log.Error().Str("component", "resty").Msgf(format, v...)
}

func (zerologAdapter) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (zerologAdapter) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
