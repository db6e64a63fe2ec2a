package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultAdminPassword = "admin123"
)

type Config struct {
	AppEnv string `yaml:"app_env"`

	HTTP struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"http"`

	Database struct {
		Driver   string `yaml:"driver"`
		Path     string `yaml:"path"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`

	Kafka struct {
		Broker string `yaml:"broker"`
	} `yaml:"kafka"`

	Geofence struct {
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
		RadiusKm  float64 `yaml:"radius_km"`
	} `yaml:"geofence"`

	Admin struct {
		Password     string `yaml:"password"`
		PasswordHash string `yaml:"password_hash"`
		JWTSecret    string `yaml:"jwt_secret"`
	} `yaml:"admin"`

	EnrollmentURL string `yaml:"enrollment_url"`
}

// Default returns the configuration used when nothing else is provided.
// The reference point and radius are the office of the original deployment.
func Default() *Config {
	cfg := &Config{AppEnv: "development"}
	cfg.HTTP.Port = "3000"
	cfg.HTTP.ReadTimeout = 5 * time.Second
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = "attendance.db"
	cfg.Database.SSLMode = "disable"
	cfg.Geofence.Latitude = 17.4435
	cfg.Geofence.Longitude = 78.3772
	cfg.Geofence.RadiusKm = 0.1
	cfg.Admin.JWTSecret = "dev-only-change-me"
	cfg.EnrollmentURL = "http://localhost:3000/"
	return cfg
}

// Load builds the configuration: defaults, then the optional YAML file at
// path, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("error parsing config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// file is optional
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnv replaces ${NAME} placeholders with environment values.
func expandEnv(content string) string {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		content = strings.ReplaceAll(content, "${"+pair[0]+"}", pair[1])
	}
	return content
}

func applyEnv(cfg *Config) error {
	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.HTTP.Port, "PORT")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Kafka.Broker, "KAFKA_BROKER")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setString(&cfg.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&cfg.Admin.JWTSecret, "JWT_SECRET")
	setString(&cfg.EnrollmentURL, "ENROLLMENT_URL")

	for key, dst := range map[string]*float64{
		"OFFICE_LAT":         &cfg.Geofence.Latitude,
		"OFFICE_LON":         &cfg.Geofence.Longitude,
		"GEOFENCE_RADIUS_KM": &cfg.Geofence.RadiusKm,
	} {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = v
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	lat, lon, r := c.Geofence.Latitude, c.Geofence.Longitude, c.Geofence.RadiusKm
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("geofence latitude out of range: %v", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("geofence longitude out of range: %v", lon)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("geofence radius must be positive: %v", r)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.HTTP.Port == "" {
		return errors.New("http port is required")
	}
	return nil
}

// UsesDefaultAdminPassword reports whether no admin credential was configured.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.Admin.Password == "" && c.Admin.PasswordHash == ""
}

// AdminPassword returns the plain admin password, falling back to the default.
func (c *Config) AdminPassword() string {
	if c.Admin.Password == "" {
		return defaultAdminPassword
	}
	return c.Admin.Password
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
