// Package tools implements the bank-transaction query tools the agent can
// call, all backed by a read-only bank.Store.
package tools

import (
	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/framework"
)

// BuildRegistry wires the full bank tool set over one store. Registration
// order fixes the order the model sees the tools in, so keep it stable.
func BuildRegistry(store bank.Store) *framework.Registry {
	reg := framework.NewRegistry()
	reg.MustRegister(
		&TotalSpendingTool{Store: store},
		&TotalIncomeTool{Store: store},
		&SpendingByCategoryTool{Store: store},
		&TopCategoriesTool{Store: store},
		&SpendingInRangeTool{Store: store},
		&ListCustomersTool{Store: store},
		&ListCategoriesTool{Store: store},
	)
	return reg
}
