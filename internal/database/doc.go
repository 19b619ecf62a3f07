// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), pool sizing, migrations
//	├── errors.go        # Driver error classification
//	├── students/        # Student and contact rows
//	├── grades/          # Grade rows
//	└── audit/           # Audit trail of mutations
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type bound to a *gorm.DB. Services
// construct repositories over the transaction handle they are given, so the
// same repository code runs inside and outside a transaction:
//
//	db, err := database.NewDatabase(cfg.Database, log)
//	defer db.Close()
//
//	err = db.DB.Transaction(func(tx *gorm.DB) error {
//	    return students.NewRepository(tx).Create(ctx, student)
//	})
//
// # Drivers
//
// SQLite is the default and is opened with foreign keys enabled so that
// deleting a student cascades to its contact and grades. PostgreSQL is
// selected with DB_DRIVER=postgres and configured from the PG_* settings.
//
// # Errors
//
// Connections are opened with gorm's TranslateError, so unique violations
// surface as gorm.ErrDuplicatedKey. IsUniqueViolation also recognises the
// raw pgconn and sqlite3 errors.
package database
