// Package domain defines the core business entities and errors.
//
// It holds the Task and TaskHistory entities, their enumerations, and the
// partial-update type used by PATCH requests. Nothing in this package knows
// about HTTP or SQL; callers translate to and from those representations.
package domain
