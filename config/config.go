package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"code.wagernet.io/wager/broker"
	"code.wagernet.io/wager/ledger"
	"code.wagernet.io/wager/match"
	"code.wagernet.io/wager/store"
)

const configFileName = "config.toml"

// ErrConfigExists init refuses to overwrite an existing configuration file.
var ErrConfigExists = errors.New("configuration file already exists")

// Config ties together all other application configuration types.
type Config struct {
	Ledger ledger.Config `group:"Ledger" namespace:"ledger"`
	Store  store.Config  `group:"Store" namespace:"store"`
	Match  match.Config  `group:"Match" namespace:"match"`
	Broker broker.Config `group:"Broker" namespace:"broker"`

	// Owner administrative party: cancels open matches, withdraws store
	// reserves, binds the store on the ledger.
	Owner string `long:"owner" description:"the administrative party"`
	// Gateway sole party allowed to report match results.
	Gateway string `long:"gateway" description:"the result oracle party"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Ledger:  ledger.NewDefaultConfig(),
		Store:   store.NewDefaultConfig(),
		Match:   match.NewDefaultConfig(),
		Broker:  broker.NewDefaultConfig(),
		Owner:   "owner",
		Gateway: "gateway",
	}
}

// Read loads the configuration from the config file under the given home.
func Read(home string) (*Config, error) {
	path := filepath.Join(home, configFileName)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read configuration")
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse configuration")
	}
	return &cfg, nil
}

// Write serializes the config to the config file under the given home,
// failing if one exists already.
func Write(home string, cfg Config) (string, error) {
	if err := os.MkdirAll(home, 0o700); err != nil {
		return "", err
	}
	path := filepath.Join(home, configFileName)
	if _, err := os.Stat(path); err == nil {
		return "", ErrConfigExists
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", errors.Wrap(err, "could not write configuration")
	}
	return path, nil
}
