// Package enrich fills detail columns from the thing endpoint: player count
// recommendations derived from the community poll, playtime, complexity
// weight, and the leading mechanics and categories. Rows that already carry a
// complexity weight are skipped, so interrupted runs resume without refetching.
package enrich
