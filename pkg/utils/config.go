package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("CIVICHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("CIVICHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "civichub"
	}

	dur := 24 * time.Hour
	if ttl := os.Getenv("CIVICHUB_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			dur = time.Duration(h) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: dur,
	}
}

type ServerConfig struct {
	HTTPAddr string
	SyncAddr string
}

func LoadServerConfig() ServerConfig {
	httpAddr := os.Getenv("CIVICHUB_HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	syncAddr := os.Getenv("CIVICHUB_SYNC_ADDR")
	if syncAddr == "" {
		syncAddr = ":7071"
	}
	return ServerConfig{HTTPAddr: httpAddr, SyncAddr: syncAddr}
}
