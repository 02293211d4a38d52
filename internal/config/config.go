package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types

    "github.com/golang-jwt/jwt/v5" // jwt is used to validate the configured signing algorithm at startup
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once in main and passed
// explicitly into handlers and services; business logic never reads the
// environment on its own.
type Config struct {
    Env               string // application environment (e.g. "dev", "prod")
    Port              string // HTTP port to listen on
    DBUser            string // database username
    DBPass            string // database password (optional)
    DBHost            string // database host address
    DBPort            string // database port number
    DBName            string // database name
    DBMaxOpenConns    int    // connection pool ceiling
    DBMaxIdleConns    int    // idle connections kept in the pool
    DBConnLifetimeMin int    // recycle pooled connections after this many minutes
    JWTSecret         string // secret used to sign access tokens
    JWTAlgorithm      string // HMAC signing algorithm name (HS256/HS384/HS512)
    AccessTTLMin      int    // access token time-to-live in minutes (0 -> 15 minute default)
    BcryptCost        int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The signing
// algorithm is validated here so that a bad value can never reach the
// token issuing path.
func Load() Config {
    cfg := Config{
        Env:               must("APP_ENV"),       // environment (dev/test/prod)
        Port:              must("APP_PORT"),      // port to bind the HTTP server
        DBUser:            must("DB_USER"),       // database user
        DBPass:            os.Getenv("DB_PASS"),  // database password (empty allowed)
        DBHost:            must("DB_HOST"),       // database host
        DBPort:            must("DB_PORT"),       // database port
        DBName:            must("DB_NAME"),       // database name
        DBMaxOpenConns:    envIntDefault("DB_MAX_OPEN_CONNS", 25),
        DBMaxIdleConns:    envIntDefault("DB_MAX_IDLE_CONNS", 25),
        DBConnLifetimeMin: envIntDefault("DB_CONN_LIFETIME_MIN", 30),
        JWTSecret:         must("SECRET_KEY"),    // secret used for signing JWTs
        JWTAlgorithm:      must("JWT_ALGORITHM"), // signing algorithm name
        AccessTTLMin:      envIntDefault("ACCESS_TOKEN_TTL_MIN", 15), // TTL for access tokens in minutes
        BcryptCost:        mustInt("BCRYPT_COST"), // bcrypt cost factor
    }
    // Resolve the algorithm name and insist on an HMAC family method.  Tokens
    // are verified with the shared secret, so asymmetric methods would be a
    // deployment mistake rather than a supported mode.
    if m := jwt.GetSigningMethod(cfg.JWTAlgorithm); m == nil {
        log.Fatalf("unknown JWT_ALGORITHM: %q", cfg.JWTAlgorithm)
    } else if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
        log.Fatalf("JWT_ALGORITHM must be an HMAC method, got %q", cfg.JWTAlgorithm)
    }
    return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// envIntDefault returns the integer value of an optional environment
// variable, falling back to def when the variable is unset.  A present but
// malformed value is still fatal.
func envIntDefault(key string, def int) int {
    s, ok := os.LookupEnv(key)
    if !ok || s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
