package batch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/batch"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

func makeInvoices(n int) []invoice.Invoice {
	invoices := make([]invoice.Invoice, n)
	for i := range invoices {
		invoices[i] = invoice.Invoice{ID: int64(i + 1), Status: invoice.StatusPending}
	}
	return invoices
}

func TestPartition_EvenSplit(t *testing.T) {
	chunks := batch.Partition(makeInvoices(100), 10)

	require.Len(t, chunks, 10)
	for _, chunk := range chunks {
		require.Len(t, chunk, 10)
	}
}

func TestPartition_FewerInvoicesThanWorkers_SingleChunk(t *testing.T) {
	chunks := batch.Partition(makeInvoices(5), 10)

	require.Len(t, chunks, 1)
	require.Len(t, chunks[0], 5)
}

func TestPartition_Empty(t *testing.T) {
	require.Nil(t, batch.Partition(nil, 10))
}

func TestPartition_RemainderFoldsIntoFinalChunk(t *testing.T) {
	chunks := batch.Partition(makeInvoices(105), 10)

	require.Len(t, chunks, 10)
	for _, chunk := range chunks[:9] {
		require.Len(t, chunk, 10)
	}
	require.Len(t, chunks[9], 15)
}

func TestPartition_NeverExceedsMaxWorkers(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 12, 19, 20, 21, 99, 100, 101} {
		chunks := batch.Partition(makeInvoices(n), 10)
		require.LessOrEqual(t, len(chunks), 10, "n=%d", n)
	}
}

func TestPartition_EveryInvoiceInExactlyOneChunk(t *testing.T) {
	invoices := makeInvoices(73)
	chunks := batch.Partition(invoices, 10)

	seen := make(map[int64]int)
	for _, chunk := range chunks {
		for _, inv := range chunk {
			seen[inv.ID]++
		}
	}

	require.Len(t, seen, len(invoices))
	for id, count := range seen {
		require.Equal(t, 1, count, "invoice %d", id)
	}
}
