// Package docstore persists the application state as a small set of named
// JSON documents, one per store key. A transaction stages document reads and
// writes in memory and commits every touched document atomically through the
// configured backend.
package docstore

// Store keys. Each key names one JSON document.
const (
	KeyClock     = "clock_v1"
	KeyLedger    = "ledger_v1"
	KeyOrders    = "orders_v1"
	KeyPortfolio = "portfolio_v1"
	KeyAudit     = "audit_v1"
	KeyPolicies  = "policies_v1"
	KeyEntities  = "entities_v1"
)

// Keys lists every document key the store manages.
func Keys() []string {
	return []string{
		KeyClock,
		KeyLedger,
		KeyOrders,
		KeyPortfolio,
		KeyAudit,
		KeyPolicies,
		KeyEntities,
	}
}
