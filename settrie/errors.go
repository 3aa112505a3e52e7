// Package settrie implements an in-memory trie of labeled sets.
//
// A SetTrie stores (set, label) pairs and answers exact-match, subset
// and superset queries in time proportional to the trie depth rather
// than the number of stored sets. See node.go and store.go for the
// node and arena layout and
// query.go for the subset/superset traversals.
package settrie

import "golang.org/x/xerrors"

var (
	// ErrNotFound is returned by label-based operations (Remove) when
	// the label does not identify any stored set.
	ErrNotFound = xerrors.New("settrie: label not found")

	// ErrBadNodeID is returned by id-based operations when the node id
	// does not name a live node in the arena.
	ErrBadNodeID = xerrors.New("settrie: node id out of range or reclaimed")

	// ErrMalformedImage is returned by Load when the block stream fails
	// structural validation (root missing, parent index out of order,
	// siblings out of token order, truncated stream).
	ErrMalformedImage = xerrors.New("settrie: malformed binary image")

	// ErrBadToken is returned by the element codec when a token cannot
	// be parsed back into a scalar element.
	ErrBadToken = xerrors.New("settrie: malformed element token")
)

// assert panics on violation of an internal invariant. Reaching this
// means a bug in the trie itself, not a caller error.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(xerrors.Errorf("settrie: invariant violation: "+format, args...))
	}
}
