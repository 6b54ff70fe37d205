package module

import (
	"time"

	"minishop/internal/core/initdata"
	"minishop/internal/platform/config"
	"minishop/internal/services/gate/domain"

	"github.com/samber/lo"
)

// Row store drivers
const (
	DriverSheets = "sheets"
	DriverPG     = "pg"
)

// Options controls the gate service and the adapters it is built on
type Options struct {
	// Telegram
	BotToken  string
	KeyScheme domain.KeyScheme
	Mode      domain.AuthMode
	MaxAge    time.Duration
	Source    domain.IdentitySource

	// Shop API
	ShopHosts     []string
	ShopPublicKey string
	ShopSecretKey string
	ShopTimeout   time.Duration
	FetchLimit    int

	// Row store
	Driver          string
	SpreadsheetID   string
	CredentialsFile string
	HeaderRows      int
	UsersSheet      string
	ProductsSheet   string
}

// FromConfig reads TELEGRAM_, SHOP_, ROWSTORE_ and SHEETS_ values
func FromConfig(cfg config.Conf) Options {
	tg := cfg.Prefix("TELEGRAM_")
	sh := cfg.Prefix("SHOP_")
	rs := cfg.Prefix("ROWSTORE_")
	gs := cfg.Prefix("SHEETS_")
	return Options{
		BotToken:  tg.MayString("BOT_TOKEN", ""),
		KeyScheme: domain.KeyScheme(enum(tg, "KEY_SCHEME", domain.KeySHA256, domain.KeyWebApp)),
		Mode:      domain.AuthMode(enum(tg, "AUTH_MODE", domain.AuthEnforced, domain.AuthBypassed)),
		MaxAge:    tg.MayDuration("MAX_AGE", initdata.DefaultMaxAge),
		Source:    domain.IdentitySource(enum(tg, "IDENTITY_SOURCE", domain.IdentitySigned, domain.IdentityClient)),

		ShopHosts:     sh.MayURLs("HOSTS", nil),
		ShopPublicKey: sh.MayString("PUBLIC_KEY", ""),
		ShopSecretKey: sh.MayString("SECRET_KEY", ""),
		ShopTimeout:   sh.MayDuration("TIMEOUT", 10*time.Second),
		FetchLimit:    sh.MayInt("FETCH_LIMIT", 4),

		Driver:          rs.MayEnum("DRIVER", DriverSheets, DriverSheets, DriverPG),
		SpreadsheetID:   gs.MayString("SPREADSHEET_ID", ""),
		CredentialsFile: gs.MayString("CREDENTIALS_FILE", ""),
		HeaderRows:      gs.MayInt("HEADER_ROWS", 1),
		UsersSheet:      gs.MayString("USERS_SHEET", "Users"),
		ProductsSheet:   gs.MayString("PRODUCTS_SHEET", "Products"),
	}
}

// enum reads key as one of allowed, the first being the default
func enum[T ~string](c config.Conf, key string, allowed ...T) string {
	names := lo.Map(allowed, func(a T, _ int) string { return string(a) })
	return c.MayEnum(key, names[0], names...)
}
