// Package catalog serves the read-only game content catalogs.
//
// Draws read an immutable Snapshot taken outside of any room transaction.
// The snapshot is cached for a TTL and rebuilt through singleflight so a
// burst of room creations triggers one load. Catalog documents are JSON
// files kept in object storage and imported by natural key.
package catalog
