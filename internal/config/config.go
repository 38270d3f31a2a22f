package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string
	HTTPPort         string
	DBName           string
	DBHost           string
	DBUser           string
	DBPass           string
	DBMaxConns       int32
	DBAcquireTimeout time.Duration
	ThanksAmount     int64
	RateRPS          int
}

// Load reads configuration from the environment, consulting an optional
// .env file first. The database password is never passed in the
// environment: DB_PASS_PATH names a file whose first line is the password.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:      get("APP_ENV", "dev"),
		HTTPPort: get("HTTP_PORT", "8080"),
		DBName:   get("DB_NAME", "postgres"),
		DBHost:   get("DB_HOST", "db"),
		DBUser:   get("DB_USER", "postgres"),
	}

	pass, err := readPasswordFile(get("DB_PASS_PATH", "/run/secrets/db_password"))
	if err != nil {
		return Config{}, err
	}
	cfg.DBPass = pass

	maxConns, err := getInt("DB_MAX_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	if maxConns <= 0 || maxConns > math.MaxInt32 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS out of range: %d", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)

	acquireSecs, err := getInt("DB_ACQUIRE_TIMEOUT_SECONDS", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.DBAcquireTimeout = time.Duration(acquireSecs) * time.Second

	amount, err := getInt("THANKS_AMOUNT", 1)
	if err != nil {
		return Config{}, err
	}
	if amount <= 0 {
		return Config{}, fmt.Errorf("THANKS_AMOUNT must be > 0, got %d", amount)
	}
	cfg.ThanksAmount = amount

	rps, err := getInt("RATE_RPS", 100)
	if err != nil {
		return Config{}, err
	}
	cfg.RateRPS = int(rps)

	return cfg, nil
}

// DatabaseURL assembles a pgx connection string from the discrete DB_* parts.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":5432",
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func readPasswordFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open password file: %w", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password file: %w", err)
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return "", errors.New("password file is empty")
	}
	return pass, nil
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
