// Command boardshelf turns a plain-text game list into an enriched collection
// CSV with locally cached box art, using the BoardGameGeek XML API.
package main
