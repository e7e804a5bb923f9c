// Package analytics derives the dashboard data products from a cleaned
// project table. Every query is a pure read-only function: it never
// mutates its input and may be called repeatedly or concurrently over the
// same table.
package analytics
