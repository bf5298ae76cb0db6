package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DefaultConnectTimeout bounds the startup ping when no timeout is configured
	DefaultConnectTimeout = 5 * time.Second

	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DB wraps a GORM database connection
type DB struct {
	*gorm.DB
	driver string
}

// New creates a new database connection with GORM.
// For DriverMySQL dsn is a go-sql-driver DSN ("user:pass@tcp(host:3306)/vidhub")
// or a mysql:// URL; for DriverSQLite it is a file path such as "./data/vidhub.db".
// connectTimeout bounds the initial ping; zero selects DefaultConnectTimeout.
func New(driver, dsn string, connectTimeout time.Duration) (*DB, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		mysqlDSN, err := MySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		dialector = mysql.Open(mysqlDSN)
	case DriverSQLite:
		// Configure SQLite with foreign keys, WAL mode and a busy timeout
		dialector = sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		// Multi-statement writes use explicit transactions
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Get underlying sql.DB for connection pool configuration
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: gormDB, driver: driver}, nil
}

// Driver returns the driver name the connection was opened with
func (db *DB) Driver() string {
	return db.driver
}

// Health checks database connectivity
func (db *DB) Health(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// GetSQLDB returns the underlying sql.DB for migrations
func (db *DB) GetSQLDB() (*sql.DB, error) {
	return db.DB.DB()
}

// ForUpdate adds a row lock to the query on engines that support SELECT ... FOR UPDATE.
// SQLite serializes writers itself, so the clause is skipped there.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if strings.EqualFold(tx.Dialector.Name(), DriverMySQL) {
		return tx.Clauses(lockingClause())
	}
	return tx
}
