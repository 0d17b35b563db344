// Package tenderservice implements the tender phase state machine inside the
// procurement context.
//
// The module owns the tender lifecycle: community approval voting, company
// proposal solicitation, proposal voting with running-winner tracking, the
// admin override surface, and the terminal award handoff to the project
// registry and funding ledger. Business rules live in application/domain
// layers; infrastructure stays behind ports and adapters.
package tenderservice
