package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string
	ContentPath string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt
	DevLogin      bool

	CORSOrigins []string

	MaxLessonBytes int64
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		ContentPath:   envOr("CONTENT_PATH", "./content"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		DevLogin:      envBool("ENABLE_DEV_LOGIN", true),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),

		MaxLessonBytes: envInt64("MAX_LESSON_BYTES", 1<<20),
	}
}

// LintConfig tunes the contentlint CLI. It lives next to the content tree
// as .contentlint.yml; a missing file means defaults.
type LintConfig struct {
	Workers          int      `yaml:"workers"`
	Skip             []string `yaml:"skip"`
	WarningsAsErrors bool     `yaml:"warningsAsErrors"`
}

func LoadLintConfig(path string) (LintConfig, error) {
	var lc LintConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lc, nil
		}
		return lc, err
	}
	if err := yaml.Unmarshal(raw, &lc); err != nil {
		return lc, err
	}
	return lc, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
