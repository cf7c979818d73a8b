package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
)

// dbOps is the query surface shared by *sqlx.DB and *sqlx.Tx, so the same
// store methods run inside or outside a transaction.
type dbOps interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type DB struct {
	dbOps
	root   *sqlx.DB
	driver string
}

// Open connects to the database and applies the schema for the given driver.
func Open(ctx context.Context, driver, dsn string, schema Schema) (*DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case constants.DriverSQLite:
		db, err = sqlx.Open("sqlite", sqliteDSN(dsn))
	case constants.DriverPostgres:
		db, err = sqlx.Open("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema.For(driver)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{dbOps: db, root: db, driver: driver}, nil
}

// sqliteDSN turns a bare path into a DSN with foreign keys, WAL and a busy
// timeout switched on. DSNs that already carry options are used as given.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(30000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Ping(ctx context.Context) error {
	return db.root.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.root.Close()
}

// RunInTx runs fn against a transaction-bound copy of db. The transaction
// is committed when fn returns nil and rolled back otherwise.
func (db *DB) RunInTx(ctx context.Context, fn func(txDB *DB) error) error {
	if _, ok := db.dbOps.(*sqlx.Tx); ok {
		return fn(db)
	}

	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	txDB := &DB{
		dbOps:  tx,
		root:   db.root,
		driver: db.driver,
	}

	if err := fn(txDB); err != nil {
		return err
	}
	return tx.Commit()
}

// insert runs an INSERT ... RETURNING id statement and returns the new id.
func (db *DB) insert(ctx context.Context, query string, args ...interface{}) (int, error) {
	var id int
	if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// exec runs a write that must touch at least one row.
func (db *DB) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return translate(db.GetContext(ctx, dest, db.Rebind(query), args...))
}

func (db *DB) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return translate(db.SelectContext(ctx, dest, db.Rebind(query), args...))
}

// translate maps driver errors onto the domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Message)
		case "23503":
			return fmt.Errorf("%w: %s", domain.ErrReference, pqErr.Message)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", domain.ErrConflict, liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s", domain.ErrReference, liteErr.Error())
		}
		// Without extended result codes only the message tells them apart.
		msg := liteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fmt.Errorf("%w: %s", domain.ErrReference, msg)
		}
	}
	return err
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE
// wildcards in the term. Use with ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
