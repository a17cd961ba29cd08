package config

import "strings"

// TableFilter reports whether a table takes part in an extraction run.
type TableFilter func(table string) bool

// environmentFilters maps an environment name to its inclusion predicate.
// Dev deployments share the source store with other workloads, so only the
// staging-prefixed tables belong to this pipeline there. Environments
// without an entry process every table.
var environmentFilters = map[string]TableFilter{
	"dev": HasPrefix("stg"),
}

// FilterFor returns the table eligibility predicate for an environment.
func FilterFor(env string) TableFilter {
	if f, ok := environmentFilters[env]; ok {
		return f
	}
	return AllTables
}

// AllTables admits every table.
func AllTables(string) bool { return true }

// HasPrefix builds a predicate admitting tables with the given name prefix.
func HasPrefix(prefix string) TableFilter {
	return func(table string) bool {
		return strings.HasPrefix(table, prefix)
	}
}
