package business

import (
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"

	"github.com/redhi-dex/wallet-connector/internal/config"
)

func TestMigrateMain_InvalidDatabaseConfig(t *testing.T) {
	cfg := &config.Config{
		Database: config.Database{
			Host:     commoncfg.SourceRef{Source: "file", File: commoncfg.CredentialFile{Path: "/nonexistent/file"}},
			Port:     "5432",
			Name:     "testdb",
			User:     commoncfg.SourceRef{Source: "embedded", Value: "user"},
			Password: commoncfg.SourceRef{Source: "embedded", Value: "pass"},
		},
	}

	err := MigrateMain(t.Context(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "making connection string from config")
}

func TestInitSessionStore_UnknownBackend(t *testing.T) {
	cfg := &config.Config{
		Session: config.Session{Backend: "etcd"},
	}

	_, _, err := initSessionStore(t.Context(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}

func TestInitSessionStore_Defaults(t *testing.T) {
	store, closeFn, err := initSessionStore(t.Context(), &config.Config{})
	assert.NoError(t, err)
	assert.NotNil(t, store)
	closeFn()
}
