package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Save     SaveConfig     `yaml:"save"`
}

// ServerConfig содержит сетевые настройки REST и метрик
type ServerConfig struct {
	RESTPort    int `yaml:"rest_port"`
	MetricsPort int `yaml:"metrics_port"`
}

// StorageConfig выбирает бэкенд слота сохранения и его параметры
type StorageConfig struct {
	Backend string      `yaml:"backend"` // memory | file | badger | redis | maria | mongo
	Path    string      `yaml:"path"`    // для file и badger
	Redis   RedisConfig `yaml:"redis"`
	Maria   MariaConfig `yaml:"maria"`
	Mongo   MongoConfig `yaml:"mongo"`
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MariaConfig содержит настройки подключения к MariaDB
type MariaConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MongoConfig содержит настройки подключения к MongoDB
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// EventBusConfig настраивает шину событий; пустой URL — in-memory шина
type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

// SaveConfig настраивает адаптер персистентности
type SaveConfig struct {
	SlotKey      string `yaml:"slot_key"`
	UseGzipCompr bool   `yaml:"use_gzip_compression"`
}

// GetRESTPort возвращает REST порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "VOXEL_REST_PORT", 8090)
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "VOXEL_METRICS_PORT", 2112)
}

// GetBackend возвращает бэкенд хранилища: config -> env -> memory
func (s *StorageConfig) GetBackend() string {
	if s.Backend != "" {
		return s.Backend
	}
	if env := os.Getenv("VOXEL_STORAGE"); env != "" {
		return env
	}
	return "memory"
}

// GetPath возвращает путь данных для файловых бэкендов
func (s *StorageConfig) GetPath() string {
	if s.Path != "" {
		return s.Path
	}
	if env := os.Getenv("VOXEL_DATA_PATH"); env != "" {
		return env
	}
	return "data"
}

// GetSlotKey возвращает фиксированный ключ слота сохранения
func (s *SaveConfig) GetSlotKey() string {
	if s.SlotKey != "" {
		return s.SlotKey
	}
	return "voxel:save:default"
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
