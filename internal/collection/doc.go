// Package collection defines the Collection Row that flows through every
// pipeline stage and its CSV persistence.
//
// A row is created by the resolver from one input line and mutated in place by
// the later stages: the joiner sets ranking fields, the enricher sets detail
// fields, and the image fetcher sets the image filename. The full row set is
// the unit of persistence; the CSV file round-trips losslessly so interrupted
// runs can resume from the last checkpoint.
package collection
