package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/gotanda-lunch/internal/config"
)

// DSN builds a go-sql-driver DSN for the parsed store target.
func DSN(t config.StoreTarget, accessKey string) string {
	mc := mysql.NewConfig()
	mc.User = t.User
	mc.Passwd = accessKey
	mc.Net = "tcp"
	mc.Addr = t.Addr
	mc.DBName = t.DBName
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	mc.ParseTime = true
	mc.Loc = time.UTC
	if len(t.Params) > 0 {
		mc.Params = t.Params
	}
	return mc.FormatDSN()
}

// Open connects to MySQL and verifies the connection.  The returned pool is
// created once at startup and shared by every request handler.
func Open(ctx context.Context, t config.StoreTarget, accessKey string) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(t, accessKey))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
