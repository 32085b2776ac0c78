// internal/config/model.go
//
// Typed configuration model for the directory service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                    – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `INDIE_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  CanonicalHost, when set, causes any
// request arriving on a different Host header (www variant, bare IP) to
// be 308-redirected onto it.
type HTTP struct {
	ListenAddr    string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS    bool   `koanf:"force_https"`
	CanonicalHost string `koanf:"canonical_host"`
}

//
// Site section
//

// Site holds the public identity of the directory: the absolute origin
// used to build canonical URLs, and the default page title.
type Site struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Title   string `koanf:"title"`
}

//
// Database section
//

// Database holds the MySQL DSN for the bookshop store.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2-City database.  When DBPath is
// empty the request-info middleware skips geolocation.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Cache section
//

// Cache tunes the in-memory bookshop collection.  ShopTTL accepts Go
// duration syntax ("5m"); zero falls back to the package default.
type Cache struct {
	ShopTTL time.Duration `koanf:"shop_ttl"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or INDIE_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // INDIE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Cache    Cache    `koanf:"cache"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
