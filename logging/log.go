package logging

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production.
	DebugLevel Level = -1
	// InfoLevel is the default logging priority.
	InfoLevel Level = 0
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel Level = 1
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel Level = 2
)

// ErrInvalidLogLevel raised on a level string ParseLevel doesn't know.
var ErrInvalidLogLevel = errors.New("invalid log level")

func (l Level) String() string {
	return l.ZapLevel().String()
}

func (l Level) ZapLevel() zapcore.Level {
	return zapcore.Level(l)
}

// ParseLevel reads a level from its string representation, as found in
// toml configuration files.
func ParseLevel(l string) (Level, error) {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(l)); err != nil {
		return InfoLevel, errors.Wrap(ErrInvalidLogLevel, l)
	}
	return Level(zl), nil
}

// Logger wraps the zap logger so engines only depend on this package,
// and so the level can be changed after construction (ReloadConf).
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New construct a logger from an existing zap config.
func New(cfg zap.Config) *Logger {
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{
		Logger: l,
		config: &cfg,
	}
}

func (log *Logger) Clone() *Logger {
	cfg := cloneConfig(log.config)
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{
		Logger: l,
		config: cfg,
		name:   log.name,
	}
}

// Named returns a copy of the logger with the given name appended to the
// current one, dot-separated.
func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{
		Logger: c.Logger.Named(newName),
		config: c.config,
		name:   newName,
	}
}

func (log *Logger) GetLevel() Level {
	return Level(log.config.Level.Level())
}

func (log *Logger) SetLevel(level Level) {
	if log.config.Level.Level() == level.ZapLevel() {
		return
	}
	log.config.Level.SetLevel(level.ZapLevel())
}

// IsDebug returns true if the logger level is at, or below, debug. Used to
// guard expensive log-only work.
func (log *Logger) IsDebug() bool {
	return log.GetLevel() <= DebugLevel
}

// AtExit flushes buffered log entries. Meant to be deferred right after the
// root logger is built.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		log.Logger.Sync()
	}
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     map[string]interface{}{},
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	if cfg.Sampling != nil {
		c.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}
	return &c
}

// NewProdLogger json-encoded logger at info level, the default for a
// running node.
func NewProdLogger() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return New(cfg)
}

// NewDevLogger console-encoded logger at debug level.
func NewDevLogger() *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return New(cfg)
}

// NewTestLogger used from unit tests, debug level so failures come with
// full engine output.
func NewTestLogger() *Logger {
	return NewDevLogger()
}
