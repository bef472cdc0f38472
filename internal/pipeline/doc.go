// Package pipeline sequences the collection build stages over a shared row
// table. A run holds an exclusive workspace lock, carries a correlation id in
// context, and checkpoints the table between stages so an interrupted run
// resumes where it stopped.
package pipeline
