package logging

import (
	"go.uber.org/zap"

	"code.wagernet.io/wager/types/num"
)

// Field aliased so engine packages never import zap directly.
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Error(err error) Field {
	return zap.Error(err)
}

// BigUint logs a num.Uint as its decimal string, nil-safe.
func BigUint(key string, val *num.Uint) Field {
	if val == nil {
		return zap.String(key, "nil")
	}
	return zap.String(key, val.String())
}

// MatchID match identifiers show up in almost every match engine entry.
func MatchID(id string) Field {
	return zap.String("match-id", id)
}

func Party(key, id string) Field {
	return zap.String(key, id)
}
