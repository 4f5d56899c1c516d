package report

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"veld/internal/protocol"
)

func TestStoreEnsureInstallsExactlyOneEmptySet(t *testing.T) {
	var s store
	doc := protocol.TextDocumentIdentifier{URI: "file:///a.vd"}

	var wg sync.WaitGroup
	results := make([][]protocol.Diagnostic, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.ensure(doc)
		}()
	}
	wg.Wait()

	for i, got := range results {
		require.Empty(t, got, "goroutine %d", i)
	}
	entries := 0
	s.m.Range(func(any, any) bool { entries++; return true })
	require.Equal(t, 1, entries)
}

func TestStoreEnsureNeverOverwrites(t *testing.T) {
	var s store
	doc := protocol.TextDocumentIdentifier{URI: "file:///a.vd"}

	s.append(doc, protocol.Diagnostic{Message: "first"})
	got := s.ensure(doc)

	require.Len(t, got, 1)
	require.Equal(t, "first", got[0].Message)
}

func TestStoreAppendPreservesOrder(t *testing.T) {
	var s store
	doc := protocol.TextDocumentIdentifier{URI: "file:///a.vd"}

	for i := 0; i < 5; i++ {
		got := s.append(doc, protocol.Diagnostic{Message: fmt.Sprintf("d%d", i)})
		require.Len(t, got, i+1)
	}
	final := s.ensure(doc)
	for i, d := range final {
		require.Equal(t, fmt.Sprintf("d%d", i), d.Message)
	}
}

func TestStoreAppendConcurrent(t *testing.T) {
	var s store
	doc := protocol.TextDocumentIdentifier{URI: "file:///a.vd"}
	const workers = 8
	const perWorker = 50

	lengths := make(chan int, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got := s.append(doc, protocol.Diagnostic{Message: fmt.Sprintf("w%d-%d", w, i)})
				lengths <- len(got)
			}
		}()
	}
	wg.Wait()
	close(lengths)

	// Every append returns a distinct length: the CAS loop never loses
	// an element and never hands two callers the same snapshot.
	seen := make(map[int]bool)
	for n := range lengths {
		require.False(t, seen[n], "length %d returned twice", n)
		seen[n] = true
	}
	require.Len(t, seen, workers*perWorker)
	require.Len(t, s.ensure(doc), workers*perWorker)
}

func TestStoreDocumentsAreIndependent(t *testing.T) {
	var s store
	a := protocol.TextDocumentIdentifier{URI: "file:///a.vd"}
	b := protocol.TextDocumentIdentifier{URI: "file:///b.vd"}

	s.append(a, protocol.Diagnostic{Message: "for a"})
	require.Empty(t, s.ensure(b))
	require.Len(t, s.ensure(a), 1)
}
