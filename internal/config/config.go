package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backend names accepted in TRIAGE_STORAGE.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Addr    string
	Storage string
	DataDir string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads configuration from the environment, falling back to a
// memory-backed server on :8080.
func Load() *Config {
	addr := os.Getenv("TRIAGE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	backend := os.Getenv("TRIAGE_STORAGE")
	if backend == "" {
		backend = StorageMemory
	}

	dataDir := os.Getenv("TRIAGE_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432 // fallback
	}

	return &Config{
		Addr:    addr,
		Storage: backend,
		DataDir: dataDir,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
