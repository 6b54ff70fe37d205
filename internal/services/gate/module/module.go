// Package module wires the gate service over its row store and shop adapters
package module

import (
	"context"

	"minishop/internal/adapters/pgrows"
	"minishop/internal/adapters/sheets"
	"minishop/internal/adapters/shop"
	"minishop/internal/modkit"
	"minishop/internal/modkit/httpkit"
	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	"minishop/internal/services/gate/domain"
	"minishop/internal/services/gate/service"
)

// rowStore is what the gate needs from a backend
type rowStore interface {
	domain.RowStore
	domain.Pinger
}

// openSheets is a seam for tests
var openSheets = func(ctx context.Context, o sheets.Options) (rowStore, error) {
	s, err := sheets.New(ctx, o)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Module defines the gate module. It has no routes of its own
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the gate module. Non-zero overrides win over config
func New(ctx context.Context, deps modkit.Deps, overrides Options) (*Module, error) {
	opts := merge(FromConfig(deps.Cfg), overrides)

	rows, err := openRowStore(ctx, deps, opts)
	if err != nil {
		return nil, err
	}

	sc := shop.NewClient(shop.Options{
		Hosts:     opts.ShopHosts,
		PublicKey: opts.ShopPublicKey,
		SecretKey: opts.ShopSecretKey,
		Timeout:   opts.ShopTimeout,
	})
	if len(sc.Hosts()) == 0 {
		return nil, perr.InvalidArgf("gate: SHOP_HOSTS is empty")
	}
	if opts.Mode != domain.AuthBypassed && opts.BotToken == "" {
		return nil, perr.InvalidArgf("gate: TELEGRAM_BOT_TOKEN is required unless TELEGRAM_AUTH_MODE=bypassed")
	}

	svc := service.New(rows, sc, service.Options{
		BotToken:      opts.BotToken,
		KeyScheme:     opts.KeyScheme,
		Mode:          opts.Mode,
		MaxAge:        opts.MaxAge,
		Source:        opts.Source,
		UsersSheet:    opts.UsersSheet,
		ProductsSheet: opts.ProductsSheet,
		FetchLimit:    opts.FetchLimit,
	})

	logger.Named("gate").Info().
		Str("driver", opts.Driver).
		Strs("shop_hosts", sc.Hosts()).
		Str("auth_mode", string(opts.Mode)).
		Str("identity_source", string(opts.Source)).
		Str("key_scheme", string(opts.KeyScheme)).
		Msg("gate ready")

	return &Module{
		deps: deps,
		opts: opts,
		ports: Ports{
			Service:  svc,
			RowStore: rows,
			Shop:     sc,
		},
	}, nil
}

func openRowStore(ctx context.Context, deps modkit.Deps, o Options) (rowStore, error) {
	switch o.Driver {
	case DriverPG:
		if deps.PG == nil {
			return nil, perr.InvalidArgf("gate: ROWSTORE_DRIVER=pg needs SERVICE_PGSQL_DBURL")
		}
		s := pgrows.New(deps.PG)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case DriverSheets, "":
		return openSheets(ctx, sheets.Options{
			SpreadsheetID:   o.SpreadsheetID,
			CredentialsFile: o.CredentialsFile,
			HeaderRows:      o.HeaderRows,
		})
	default:
		return nil, perr.InvalidArgf("gate: unknown row store driver %q", o.Driver)
	}
}

func merge(base, over Options) Options {
	if over.BotToken != "" {
		base.BotToken = over.BotToken
	}
	if over.KeyScheme != "" {
		base.KeyScheme = over.KeyScheme
	}
	if over.Mode != "" {
		base.Mode = over.Mode
	}
	if over.MaxAge != 0 {
		base.MaxAge = over.MaxAge
	}
	if over.Source != "" {
		base.Source = over.Source
	}
	if len(over.ShopHosts) > 0 {
		base.ShopHosts = over.ShopHosts
	}
	if over.ShopPublicKey != "" {
		base.ShopPublicKey = over.ShopPublicKey
	}
	if over.ShopSecretKey != "" {
		base.ShopSecretKey = over.ShopSecretKey
	}
	if over.ShopTimeout != 0 {
		base.ShopTimeout = over.ShopTimeout
	}
	if over.FetchLimit != 0 {
		base.FetchLimit = over.FetchLimit
	}
	if over.Driver != "" {
		base.Driver = over.Driver
	}
	if over.SpreadsheetID != "" {
		base.SpreadsheetID = over.SpreadsheetID
	}
	if over.CredentialsFile != "" {
		base.CredentialsFile = over.CredentialsFile
	}
	if over.HeaderRows != 0 {
		base.HeaderRows = over.HeaderRows
	}
	if over.UsersSheet != "" {
		base.UsersSheet = over.UsersSheet
	}
	if over.ProductsSheet != "" {
		base.ProductsSheet = over.ProductsSheet
	}
	return base
}

// Ports returns the module ports (Service, RowStore, Shop)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "gate" }

// MountRoutes mounts nothing, the miniapp module serves the gate
func (m *Module) MountRoutes(_ httpkit.Router) {}
