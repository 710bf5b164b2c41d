package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath 为未配置数据库路径时使用的 SQLite 文件。
const DefaultPath = "mindfulme.db"

// Option 调整 gorm 配置，例如在测试中静默 SQL 日志。
type Option func(*gorm.Config)

// WithLogLevel 设置 gorm 日志级别。
func WithLogLevel(level logger.LogLevel) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = logger.Default.LogMode(level)
	}
}

// Open 打开数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 mindfulme.db。
func Open(databasePath string, opts ...Option) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = DefaultPath
	}

	if !isMemoryPath(path) {
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
	}

	cfg := &gorm.Config{TranslateError: true}
	for _, opt := range opts {
		opt(cfg)
	}

	gdb, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, err
	}

	// SQLite 只允许单写者，统一走一个连接避免 database is locked
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate 创建 activities 与 habits 两张表及其索引。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&Activity{}, &Habit{})
}

// Close 释放底层连接。
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
