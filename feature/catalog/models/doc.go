// Package models defines the content catalogs the game draws from.
//
// Catalog rows are written by content editors (through the catalog import)
// and are read-only while rooms are played. Assigned content copies the
// description it needs, so later catalog edits never change issued cards.
package models
