package report

import (
	"sync"

	"veld/internal/protocol"
)

// diagList is an immutable snapshot of the diagnostics published for
// one document. Appending builds a fresh node; readers holding an old
// snapshot are never invalidated.
type diagList struct {
	items []protocol.Diagnostic
}

var emptyDiagList = &diagList{items: []protocol.Diagnostic{}}

// store accumulates per-document diagnostic lists for the lifetime of
// one compile task. It only grows: there is no delete.
//
// The map update is a LoadOrStore plus CompareAndSwap loop over
// *diagList snapshots, so appends for unrelated documents never
// serialize against each other and no lock is held while the caller
// sends the resulting payload.
type store struct {
	m sync.Map // protocol.TextDocumentIdentifier -> *diagList
}

// ensure returns the current list for doc, installing the shared empty
// snapshot if doc was never seen. Concurrent first calls for the same
// document all observe the same installed list.
func (s *store) ensure(doc protocol.TextDocumentIdentifier) []protocol.Diagnostic {
	cur, _ := s.m.LoadOrStore(doc, emptyDiagList)
	return cur.(*diagList).items
}

// append atomically extends doc's list with d and returns the new full
// list, in arrival order.
func (s *store) append(doc protocol.TextDocumentIdentifier, d protocol.Diagnostic) []protocol.Diagnostic {
	for {
		cur, _ := s.m.LoadOrStore(doc, emptyDiagList)
		old := cur.(*diagList)
		next := &diagList{items: make([]protocol.Diagnostic, len(old.items)+1)}
		copy(next.items, old.items)
		next.items[len(old.items)] = d
		if s.m.CompareAndSwap(doc, cur, next) {
			return next.items
		}
	}
}
