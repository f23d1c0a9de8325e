package manifest

import (
	"github.com/artie-labs/synapse-writer/lib/config"
)

// Reconcile returns the configured items in the physical order of header.
// Items missing from the header and items of type "ignore" are dropped. Every returned item carries its 1-based header Position.
func Reconcile(header []string, items []config.Column) []config.Column {
	used := make([]bool, len(items))
	var reconciled []config.Column
	for headerIdx, headerColumn := range header {
		for itemIdx, item := range items {
			if used[itemIdx] || item.Name != headerColumn {
				continue
			}

			used[itemIdx] = true
			if !item.IsIgnored() {
				item.Position = headerIdx + 1
				reconciled = append(reconciled, item)
			}
			break
		}
	}

	return reconciled
}
