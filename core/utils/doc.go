// Package utils provides conversion helpers for loosely typed input such as
// catalog documents exported from spreadsheets.
package utils
