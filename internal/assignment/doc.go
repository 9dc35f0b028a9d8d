// Package assignment persists plot assignments and annotation records in
// SQLite and implements allocation, queue resolution, submission, and
// progress reporting on top of them.
//
// A plot belongs to at most one annotator, enforced by a UNIQUE constraint
// on the plot column; allocation claims plots with insert-or-ignore inside a
// single transaction so concurrent allocators can never double-assign.
// Submission upserts the annotation record and marks the assignment complete
// in one transaction, keeping the two tables consistent.
package assignment
