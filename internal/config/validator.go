package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion must match ENV_SCHEMA_VERSION in the loaded .env
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty for every storage backend
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
	"ADMIN_ADDRESS",
}

// PostgresEnvVars are additionally required when STORAGE=postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// placeholder values shipped in .env.example
var examplePlaceholders = map[string]string{
	"DB_PASSWORD": "change_this_secure_password",
	"API_KEY":     "generate_with_openssl_rand_hex_32",
}

var (
	ErrSchemaVersionMissing  = errors.New("ENV_SCHEMA_VERSION is not set")
	ErrSchemaVersionMismatch = errors.New("ENV_SCHEMA_VERSION mismatch")
	ErrMissingEnv            = errors.New("missing required environment variables")
)

// ValidateEnv checks the schema version and the presence of required variables
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); {
	case v == "":
		return fmt.Errorf("%w (expected %s)", ErrSchemaVersionMissing, ExpectedEnvSchemaVersion)
	case v != ExpectedEnvSchemaVersion:
		return fmt.Errorf("%w: expected %s, got %s", ErrSchemaVersionMismatch, ExpectedEnvSchemaVersion, v)
	}

	if missing := missingVars(requiredVars()); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

func requiredVars() []string {
	vars := append([]string{}, RequiredEnvVars...)
	if strings.EqualFold(os.Getenv("STORAGE"), StoragePostgres) {
		vars = append(vars, PostgresEnvVars...)
	}
	return vars
}

func missingVars(names []string) []string {
	var missing []string
	for _, n := range names {
		if os.Getenv(n) == "" {
			missing = append(missing, n)
		}
	}
	return missing
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that work
// but probably should not reach production.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, name := range []string{"DB_PASSWORD", "API_KEY"} {
		if os.Getenv(name) == examplePlaceholders[name] {
			warnings = append(warnings, fmt.Sprintf("%s still holds the .env.example placeholder", name))
		}
	}
	if os.Getenv("REDIS_ADDR") == "" {
		warnings = append(warnings, "REDIS_ADDR is not set, events will not be mirrored to a Redis stream")
	}
	return warnings, nil
}
