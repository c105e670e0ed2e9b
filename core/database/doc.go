// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (development and
// tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the database with error translation enabled, so unique index
// violations (room codes, seats, device bindings) arrive as
// gorm.ErrDuplicatedKey regardless of the driver.
//
// # Locking
//
// ForUpdate adds SELECT ... FOR UPDATE to a query inside a transaction on
// dialects with row locks. Room mutations lock their room row with it.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table. The integrity feature
// compares them against the GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "rooms")
package database
