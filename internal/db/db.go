// Package db opens the relational store behind the records API and guards
// access to it with a bounded connection pool.
package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/md-abdullah-92/edurecords/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// mysqlTLSConfigName is the key the custom trust anchor is registered under.
const mysqlTLSConfigName = "edurecords"

// Open creates the *bun.DB for the configured driver, applies pool sizing and
// verifies the database answers a ping.
func Open(cfg *config.Config) (*bun.DB, error) {
	sqlDB, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	lifetime, err := time.ParseDuration(cfg.Pool.ConnMaxLifetime)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}

	maxIdle := cfg.Pool.MaxIdleConns
	if maxIdle > cfg.Pool.MaxConns {
		maxIdle = cfg.Pool.MaxConns
	}
	sqlDB.SetMaxOpenConns(cfg.Pool.MaxConns)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	bunDB := NewBunDB(sqlDB, cfg.Database.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := bunDB.PingContext(ctx); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return bunDB, nil
}

// NewBunDB wraps sqlDB with the bun dialect matching driverName.
func NewBunDB(sqlDB *sql.DB, driverName string) *bun.DB {
	switch driverName {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New())
	default:
		return bun.NewDB(sqlDB, mysqldialect.New())
	}
}

func openSQL(cfg *config.Config) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		connector, err := mysqlConnector(cfg)
		if err != nil {
			return nil, err
		}
		return sql.OpenDB(connector), nil
	case "postgres":
		sqlDB, err := sql.Open("pgx", cfg.GetPostgresConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return sqlDB, nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite", cfg.Database.DBName)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return sqlDB, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func mysqlConnector(cfg *config.Config) (driver.Connector, error) {
	port := cfg.Database.Port
	if port == "" {
		port = "3306"
	}

	mcfg := mysql.NewConfig()
	mcfg.User = cfg.Database.User
	mcfg.Passwd = cfg.Database.Password
	mcfg.Net = "tcp"
	mcfg.Addr = net.JoinHostPort(cfg.Database.Host, port)
	mcfg.DBName = cfg.Database.DBName
	mcfg.ParseTime = true

	if cfg.Database.TLSRootCert != "" {
		tlsCfg, err := loadTrustAnchor(cfg.Database.TLSRootCert, cfg.Database.Host)
		if err != nil {
			return nil, err
		}
		if err := mysql.RegisterTLSConfig(mysqlTLSConfigName, tlsCfg); err != nil {
			return nil, fmt.Errorf("failed to register mysql tls config: %w", err)
		}
		mcfg.TLSConfig = mysqlTLSConfigName
	}

	connector, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build mysql connector: %w", err)
	}
	return connector, nil
}

// loadTrustAnchor builds a TLS config that only trusts the PEM roots in path.
func loadTrustAnchor(path, serverName string) (*tls.Config, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tls root certificate: %w", err)
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", path)
	}
	return &tls.Config{
		RootCAs:    roots,
		ServerName: serverName,
		MinVersion: tls.VersionTLS12,
	}, nil
}
