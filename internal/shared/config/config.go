// Package config defines the configuration structs shared across the
// application. Loading lives in internal/infrastructure/config.
package config

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	BcryptCost           int    `mapstructure:"bcrypt_cost"`
	JWTSecret            string `mapstructure:"jwt_secret"`
	SessionExpHours      int    `mapstructure:"session_exp_hours"`
	ResetTokenExpMinutes int    `mapstructure:"reset_token_exp_minutes"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type EmailConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// GatewayConfig selects the backend gateway implementation.
// Backend is "memory" (process-local) or "redis".
type GatewayConfig struct {
	Backend string `mapstructure:"backend"`
}
