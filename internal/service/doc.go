// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and never
// depend on a specific infrastructure implementation. Operations that write
// more than one record run inside a single transaction obtained from a
// store.TxRunner, so an entity change and its audit record commit together.
package service
