// Package database provides SQLite-based storage for analysis run history.
//
// This package implements the RunDB, which stores one row per completed
// analysis run:
//   - The full experiment report as a JSON document
//   - A compact summary for history listings
//   - Indexed columns for filtering by experiment and start time
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Run history is written once per analysis and read by the compare
//    command, so performance requirements are modest
// 4. WAL mode provides good concurrent read performance
package database
