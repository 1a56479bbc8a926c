// Package domain contains the core business entities and rules for
// techpack-cli: the tech pack document model, the section schema registry,
// value coercion, conversation sessions, and the view revision model.
//
// The domain layer has no dependencies on adapters or external services.
package domain
