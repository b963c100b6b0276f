package config

import (
	"github.com/sirupsen/logrus"
)

const DefaultStaffUsers = "staff:staff123:Staff User,admin:admin123:Admin"

type Config struct {
	Host string
	Port string

	AvgServiceMinutes    int
	RecentCompletedLimit int

	StaffUsers          string
	StaffPasswordHashed bool
	JWTSecret           string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	DatabaseDSN string

	BasicAuthUser string
	BasicAuthPass string

	AllowOrigins string
	LogLevel     logrus.Level
}

func Load() Config {
	level, err := logrus.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}

	return Config{
		Host:                 GetEnv("APP_HOST", ""),
		Port:                 GetEnv("APP_PORT", "4000"),
		AvgServiceMinutes:    GetEnvInt("AVG_SERVICE_MINUTES", 10),
		RecentCompletedLimit: GetEnvInt("RECENT_COMPLETED_LIMIT", 20),
		StaffUsers:           GetEnv("STAFF_USERS", DefaultStaffUsers),
		StaffPasswordHashed:  GetEnvBool("STAFF_PASSWORD_HASHED", false),
		JWTSecret:            GetEnv("JWT_SECRET", ""),
		RedisAddr:            GetEnv("REDIS_ADDR", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		RedisDB:              GetEnvInt("REDIS_DB", 0),
		RedisChannel:         GetEnv("REDIS_CHANNEL", "queue:events"),
		DatabaseDSN:          GetEnv("DB_DSN", ""),
		BasicAuthUser:        GetEnv("BASIC_AUTH_USER", ""),
		BasicAuthPass:        GetEnv("BASIC_AUTH_PASS", ""),
		AllowOrigins:         GetEnv("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:             level,
	}
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
