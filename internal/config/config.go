// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	HTTP HTTPServer `yaml:"http"`

	Database Database `yaml:"database"`
	ValKey   ValKey   `yaml:"valkey"`
	Session  Session  `yaml:"session"`
	Wallet   Wallet   `yaml:"wallet"`
	Migrate  Migrate  `yaml:"migrate"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

type Database struct {
	Name     string              `yaml:"name"`
	Port     string              `yaml:"port"`
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
}

type ValKey struct {
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	Prefix   string              `yaml:"prefix"`
}

// Session selects where the persisted wallet session lives.
type Session struct {
	// Backend is one of memory, file, valkey, postgres.
	Backend string `yaml:"backend" default:"memory"`
	// FilePath overrides the session file location for the file backend.
	// Empty means the user config directory.
	FilePath string `yaml:"filePath"`
}

// Wallet carries the connector request constants and the provider binding.
type Wallet struct {
	// Provider is the signing provider binding: "none" reports the
	// provider as absent, "dev" enables the auto-approving development
	// signer.
	Provider        string        `yaml:"provider" default:"none"`
	LoginChallenge  string        `yaml:"loginChallenge" default:"RedHi DEX Login"`
	AppID           string        `yaml:"appID" default:"redhi_dex"`
	DisplayLabel    string        `yaml:"displayLabel" default:"RedHi DEX Transaction"`
	PresenceRecheck time.Duration `yaml:"presenceRecheck" default:"1s"`
}

type Migrate struct {
	Source string `yaml:"source" default:"file://./sql"`
}
