package batch

import (
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

// Partition splits invoices into at most maxWorkers contiguous,
// disjoint chunks. Chunk size is len/maxWorkers; when that floors to
// zero everything fits in a single chunk, and any remainder folds into
// the final chunk so the chunk count never exceeds maxWorkers.
func Partition(invoices []invoice.Invoice, maxWorkers int) [][]invoice.Invoice {
	n := len(invoices)
	if n == 0 {
		return nil
	}

	size := n / maxWorkers
	if size == 0 {
		return [][]invoice.Invoice{invoices}
	}

	chunks := make([][]invoice.Invoice, 0, maxWorkers)
	start := 0
	for i := 0; i < maxWorkers-1 && start+size < n; i++ {
		chunks = append(chunks, invoices[start:start+size])
		start += size
	}

	return append(chunks, invoices[start:])
}
