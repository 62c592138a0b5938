package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// Revenue split percentages; must sum to 100.
	CompanyPct int64
	StationPct int64
	DriverPct  int64

	BookingExpiryHours  int
	AutoCheckoutHours   int
	AutoCheckoutEnabled bool
}

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: envOr("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "busfleet"),

		JWTSecret: jwtSecret,

		CompanyPct: envInt64("REVENUE_COMPANY_PCT", 10),
		StationPct: envInt64("REVENUE_STATION_PCT", 5),
		DriverPct:  envInt64("REVENUE_DRIVER_PCT", 85),

		BookingExpiryHours:  int(envInt64("BOOKING_EXPIRY_HOURS", 24)),
		AutoCheckoutHours:   int(envInt64("AUTO_CHECKOUT_HOURS", 1)),
		AutoCheckoutEnabled: envOr("AUTO_CHECKOUT", "on") != "off",
	}
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
