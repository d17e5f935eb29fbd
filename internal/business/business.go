package business

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/valkey-io/valkey-go"

	"github.com/redhi-dex/wallet-connector/internal/business/server"
	"github.com/redhi-dex/wallet-connector/internal/config"
	"github.com/redhi-dex/wallet-connector/internal/connector"
	"github.com/redhi-dex/wallet-connector/internal/keychain"
	keychaindev "github.com/redhi-dex/wallet-connector/internal/keychain/dev"
	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
	sessionfile "github.com/redhi-dex/wallet-connector/internal/sessionstore/file"
	sessionmemory "github.com/redhi-dex/wallet-connector/internal/sessionstore/memory"
	sessionpg "github.com/redhi-dex/wallet-connector/internal/sessionstore/postgres"
	sessionvalkey "github.com/redhi-dex/wallet-connector/internal/sessionstore/valkey"
)

// Main wires the session store, the provider binding and the connector
// together and serves the HTTP API until ctx is done.
func Main(ctx context.Context, cfg *config.Config) error {
	store, closeFn, err := initSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising the session store: %w", err)
	}

	defer closeFn()

	conn := connector.New(initProvider(ctx, cfg), store, connector.Config{
		LoginChallenge:  cfg.Wallet.LoginChallenge,
		AppID:           cfg.Wallet.AppID,
		DisplayLabel:    cfg.Wallet.DisplayLabel,
		PresenceRecheck: cfg.Wallet.PresenceRecheck,
	})

	conn.Start(ctx)
	defer conn.Close()

	return server.StartHTTPServer(ctx, cfg, conn)
}

func initProvider(ctx context.Context, cfg *config.Config) keychain.Provider {
	if cfg.Wallet.Provider == "dev" {
		return keychaindev.NewProvider(ctx)
	}

	return keychain.Unavailable{}
}

func initSessionStore(ctx context.Context, cfg *config.Config) (_ sessionstore.Store, closeFn func(), _ error) {
	noop := func() {}

	switch cfg.Session.Backend {
	case "", "memory":
		return sessionmemory.NewStore(), noop, nil

	case "file":
		path := cfg.Session.FilePath
		if path == "" {
			var err error
			path, err = sessionfile.DefaultPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolving session file path: %w", err)
			}
		}

		return sessionfile.NewStore(path), noop, nil

	case "valkey":
		valkeyClient, err := initValkeyClient(cfg)
		if err != nil {
			return nil, nil, err
		}

		return sessionvalkey.NewStore(valkeyClient, cfg.ValKey.Prefix), valkeyClient.Close, nil

	case "postgres":
		connStr, err := config.MakeConnStr(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("making dsn from config: %w", err)
		}

		db, err := pgxpool.New(ctx, connStr)
		if err != nil {
			return nil, nil, fmt.Errorf("initialising pgxpool connection: %w", err)
		}

		return sessionpg.NewStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend: %q", cfg.Session.Backend)
	}
}

func initValkeyClient(cfg *config.Config) (valkey.Client, error) {
	valkeyHost, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Host)
	if err != nil {
		return nil, fmt.Errorf("loading valkey host: %w", err)
	}

	valkeyUsername, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.User)
	if err != nil {
		return nil, fmt.Errorf("loading valkey username: %w", err)
	}

	valkeyPassword, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Password)
	if err != nil {
		return nil, fmt.Errorf("loading valkey password: %w", err)
	}

	valkeyClient, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{string(valkeyHost)},
		Username:    string(valkeyUsername),
		Password:    string(valkeyPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("creating a new valkey client: %w", err)
	}

	return valkeyClient, nil
}
