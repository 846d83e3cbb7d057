package mysql

import (
	"database/sql"
	"strconv"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/sqlweft/sqlweft/internal/database"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
	defaultPort            = 3306
)

// DSN builds the go-sql-driver data source name from cfg. Only the options
// present in cfg are set; absent options are left to the driver.
func DSN(cfg *database.Config) string {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true

	if cfg.Host != "" {
		port := cfg.Port
		if port == 0 {
			port = defaultPort
		}
		mc.Net = "tcp"
		mc.Addr = cfg.Host + ":" + strconv.Itoa(port)
	}

	return mc.FormatDSN()
}

// buildPool configures and returns a *sql.DB with pool settings applied.
func buildPool(cfg *database.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, mapError(err, "failed to open mysql pool")
	}

	maxOpen := cfg.MaxConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	return db, nil
}
