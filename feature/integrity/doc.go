// Package integrity provides health checks for the data a room draw depends on.
//
// A room draw fails with ContentUnavailable when the catalog has no shelter
// for the room's size and difficulty, or no catastrophe for its severity.
// These checks find such gaps before a player hits them.
//
// # Checks Provided
//
//   - Catalog: Lists every (shelter size, difficulty) pair and every severity with nothing to draw, plus empty trait categories and card catalogs.
//   - Schema: Validates that the connected database schema matches the gorm models (columns, explicit types).
//   - Storage: Checks the catalog folder and the default catalog document in the bucket.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/catalog : Runs the catalog coverage check.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
