// Command mindfulme 运行 MindfulMe 习惯追踪服务，并提供若干维护子命令。
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mindfulme/internal/config"
	"github.com/mindfulme/internal/db"
	"github.com/mindfulme/internal/router"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "mindfulme",
	Short:        "MindfulMe - chat based habit tracker",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var databaseFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database", "", "SQLite database path (overrides DATABASE_PATH)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(gdb, cfg.SessionSecret)
	log.Printf("mindfulme listening on %s (database=%s)", cfg.ListenAddr, cfg.DatabasePath)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Printf("failed to run server: %v", err)
		return err
	}
	return nil
}

func loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return config.AppConfig{}, err
	}
	if databaseFlag != "" {
		cfg.DatabasePath = databaseFlag
	}
	return cfg, nil
}

func openDatabase(cfg config.AppConfig) (*gorm.DB, error) {
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Printf("failed to initialize database: %v", err)
		return nil, err
	}
	return gdb, nil
}
