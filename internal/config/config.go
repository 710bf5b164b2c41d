package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string `yaml:"listen_addr"`
	Port          string `yaml:"port"`
	DatabasePath  string `yaml:"database_path"`
	SessionSecret string `yaml:"session_secret"`
	GinMode       string `yaml:"gin_mode"`
}

// ConfigFileEnv 指向可选的 YAML 配置文件，环境变量优先级更高。
const ConfigFileEnv = "MINDFULME_CONFIG"

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若设置了 MINDFULME_CONFIG，则先读取该文件作为基础值。
func Load() (AppConfig, error) {
	var base AppConfig
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		base = fileCfg
	}

	return resolve(base, os.Getenv), nil
}

// LoadFile 解析 YAML 配置文件，不做默认值填充。
func LoadFile(path string) (AppConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func resolve(base AppConfig, getenv func(string) string) AppConfig {
	pick := func(key, fallback string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return strings.TrimSpace(fallback)
	}

	port := pick("PORT", base.Port)
	if port == "" {
		port = "5000"
	}

	listenAddr := pick("LISTEN_ADDR", base.ListenAddr)
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := pick("DATABASE_PATH", base.DatabasePath)
	if databasePath == "" {
		databasePath = "mindfulme.db"
	}

	sessionSecret := pick("SESSION_SECRET", base.SessionSecret)
	if sessionSecret == "" {
		sessionSecret = "mindfulme-dev-secret"
	}

	ginMode := pick("GIN_MODE", base.GinMode)
	if ginMode == "" {
		ginMode = "release"
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		SessionSecret: sessionSecret,
		GinMode:       ginMode,
	}
}
