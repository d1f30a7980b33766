// Package memory provides in-process implementations of the repository
// interfaces. They back local development and the test suite; selection
// between them and the MongoDB implementations happens in configuration,
// not in scattered conditionals.
package memory

import "time"

func withinRange(date, from, to time.Time) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}
