package service

import "github.com/rs/zerolog"

var discardLogger = zerolog.Nop()
