// Package rank joins resolved rows against the bulk BGG ranking export. The
// join is a pure left join on the numeric id: every input row survives, and
// games absent from the export receive fixed placeholder statistics so the
// output stays numerically sortable.
package rank
