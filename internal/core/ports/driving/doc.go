// Package driving provides interfaces for application entry points
// (primary/inbound ports): the conversational editor, the tech pack
// service, the revision ledger, and the multi-view generator.
package driving
