package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 连接池参数
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// InitMySQL 连接 MySQL
func InitMySQL(host string, port int, user, password, dbName string, opts Options) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, password, host, port, dbName)

	connection, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("MySQL 连接失败: %w", err)
	}
	return tune(connection, opts)
}

// InitPostgres 连接 Postgres
func InitPostgres(host string, port int, user, password, dbName, sslMode string, opts Options) (*gorm.DB, error) {
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, password, dbName, sslMode)

	connection, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("Postgres 连接失败: %w", err)
	}
	return tune(connection, opts)
}

// InitSQLite 打开 SQLite，path 可以是文件路径或 "file:xxx?mode=memory&cache=shared"。
// SQLite 只允许单写，连接数固定为 1，避免 database is locked。
func InitSQLite(path string) (*gorm.DB, error) {
	connection, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("SQLite 打开失败: %w", err)
	}
	return tune(connection, Options{MaxOpenConns: 1, MaxIdleConns: 1})
}

func tune(connection *gorm.DB, opts Options) (*gorm.DB, error) {
	sqlDB, err := connection.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return connection, nil
}

// Close 关闭底层连接
func Close(connection *gorm.DB) error {
	sqlDB, err := connection.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
