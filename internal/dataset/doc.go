// Package dataset loads the joined project-management table and cleans it
// into typed rows. It consolidates source parsing, cell normalization, and
// read-through caching into a cohesive package that handles the data
// lifecycle from file ingestion to the immutable in-memory table the
// analytics layer consumes.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. FileLoader: reads CSV (comma or semicolon) and Excel sources
// 2. Cleaning functions: total per-cell normalizers (CleanCompletion,
//    CleanCost, CleanDate)
// 3. CachingLoader: explicit read-through memoization keyed by source path
//
// # Data Flow
//
//	File → FileLoader → raw cells → cleaners → Table → analytics
//
// # Error Handling
//
// Only one condition is an error: the source cannot be read as a table at
// all, reported as ErrSourceUnreadable. Individual malformed cells never
// abort a load; they degrade to a defined default (missing for completion
// and dates, zero for costs) and rows without a project identifier are
// dropped and counted.
package dataset
