// Package classify derives a task's category, priority and suggested actions
// from its free-text description.
//
// Classification is keyword substring matching over the lower-cased text.
// Category rules are checked in order and the first match wins; priority
// rules are checked independently. The function is total: any input,
// including the empty string, yields a result.
package classify
