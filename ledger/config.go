package ledger

import (
	"code.wagernet.io/wager/config/encoding"
	"code.wagernet.io/wager/logging"
)

const namedLogger = "ledger"

// Config represents the configuration of the ledger engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
