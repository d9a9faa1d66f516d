package config

import (
	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment once at startup. godotenv fills the
// environment first in dev; prod uses real env vars.
type Config struct {
	Addr  string `env:"ADDR" envDefault:":8080"`
	DBDSN string `env:"DB_DSN,required"`

	// Shared secret of the storefront app proxy. Requests hitting
	// /apps/easy-tick/* carry a signature computed with it.
	ProxySecret string `env:"PROXY_SECRET,required"`

	// Secret used to sign the exclusion-list cookie.
	CookieSecret string `env:"COOKIE_SECRET,required"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	// EXCLUSION_STORE selects where the shopper's unchecked-variant list
	// lives: "cookie" (default) or "redis".
	ExclusionStore string `env:"EXCLUSION_STORE" envDefault:"cookie"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`

	// Campaign image storage, see internal/storage.
	StorageDriver        string `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalUploadDir       string `env:"LOCAL_UPLOAD_DIR" envDefault:"./storage/uploads"`
	LocalUploadURLPrefix string `env:"LOCAL_UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	S3Region             string `env:"S3_REGION"`
	S3Bucket             string `env:"S3_BUCKET"`
	S3Prefix             string `env:"S3_PREFIX" envDefault:"uploads"`
	S3PublicBaseURL      string `env:"S3_PUBLIC_BASE_URL"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
