package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Postgres  DBConfig
	Redis     RedisConfig
	S3        S3Config
	Transcode TranscodeConfig
	Worker    WorkerConfig
	Container ContainerConfig
	Logger    Logger
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	JobQueueKey   string
}

type S3Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	InputBucket  string
	OutputBucket string
}

// TranscodeConfig carries the callback target handed to workers, the secret
// callback tokens are signed with, and the supervision windows.
type TranscodeConfig struct {
	CallbackBaseURL    string
	CallbackSecret     string
	SupervisionTimeout int // seconds
	SweepInterval      int // seconds
	PresignExpiry      int // minutes
}

func (t TranscodeConfig) SupervisionWindow() time.Duration {
	return time.Duration(t.SupervisionTimeout) * time.Second
}

func (t TranscodeConfig) SweepEvery() time.Duration {
	return time.Duration(t.SweepInterval) * time.Second
}

type WorkerConfig struct {
	WorkerCount int
	MaxCPUUsage float64
}

type ContainerConfig struct {
	Address   string
	Namespace string
	Image     string
	CPULimit  float64
	MemoryMB  int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Transcode.SupervisionTimeout <= 0 {
		c.Transcode.SupervisionTimeout = 1800
	}
	if c.Transcode.SweepInterval <= 0 {
		c.Transcode.SweepInterval = 60
	}
	if c.Transcode.PresignExpiry <= 0 {
		c.Transcode.PresignExpiry = 60
	}
	return &c, nil
}
