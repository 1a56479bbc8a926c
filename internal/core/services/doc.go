// Package services implements the driving ports: intent classification,
// edit-action extraction, the edit application orchestrator, the revision
// ledger, and the multi-view generation sequencer.
//
// Services depend only on domain types and driven ports; all I/O goes
// through injected adapters.
package services
