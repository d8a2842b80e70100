// Package testdb opens throwaway sqlite databases for repository tests.
package testdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an isolated in-memory database with the given models migrated.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := registerForeignKeyTranslation(db); err != nil {
		t.Fatalf("register callbacks: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("auto migrate: %v", err)
		}
	}
	return db
}

// registerForeignKeyTranslation maps sqlite foreign key failures onto
// gorm.ErrForeignKeyViolated, the error postgres violations surface as.
func registerForeignKeyTranslation(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().After("gorm:create").Register("testdb:foreign_key", translateForeignKey); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("testdb:foreign_key", translateForeignKey); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("testdb:foreign_key", translateForeignKey)
}

func translateForeignKey(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, gorm.ErrForeignKeyViolated) {
		return
	}
	var sqliteErr sqlite3.Error
	if errors.As(db.Error, &sqliteErr) && isForeignKeyFailure(sqliteErr) {
		db.Error = fmt.Errorf("%w: %s", gorm.ErrForeignKeyViolated, sqliteErr.Error())
	}
}

// isForeignKeyFailure reports whether err is a sqlite foreign key constraint failure.
func isForeignKeyFailure(err sqlite3.Error) bool {
	return err.Code == sqlite3.ErrConstraint &&
		(err.ExtendedCode == sqlite3.ErrConstraintForeignKey || strings.Contains(err.Error(), "FOREIGN KEY"))
}

// Mock returns a gorm handle over sqlmock so services can be checked for
// transaction begin/commit/rollback without a database.
func Mock(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm over sqlmock: %v", err)
	}
	return db, sqlDB, mock
}

// ExpectTx registers one begin followed by commit or rollback.
func ExpectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}
