package binding

import (
	"github.com/bbva/settrie-go/settrie"
)

// Registry is a handle table: trie and iterator handles as opaque
// integers backed by maps owned by this Registry value (there is no
// package-level table; each Registry is independent). A Go caller that
// owns its *Trie directly has no need for this indirection; Registry
// exists only to give a language binding (over cgo, a C ABI, etc.) an
// integer-handle surface. Zero value is ready to use.
type Registry struct {
	tries     map[int]*settrie.Trie
	loadBufs  map[int][][]byte
	iterators map[int]*iterator
	images    map[int]*image
	next      int
}

// NewSetTrie creates an empty trie and returns its handle.
func (r *Registry) NewSetTrie() int {
	r.init()
	h := r.alloc()
	r.tries[h] = settrie.New()
	return h
}

// DestroySetTrie releases a trie handle. A no-op on an unknown handle.
func (r *Registry) DestroySetTrie(handle int) {
	if r.tries == nil {
		return
	}
	delete(r.tries, handle)
	delete(r.loadBufs, handle)
}

// Insert adds setLiteral under label. Silently does nothing on an
// unknown handle or a malformed literal — insert has no error return
// across this boundary.
func (r *Registry) Insert(handle int, setLiteral, label string) {
	t, ok := r.trie(handle)
	if !ok {
		return
	}
	elems, err := ParseSetLiteral(setLiteral)
	if err != nil {
		return
	}
	t.Insert(elems, label)
}

// Find returns the label of the set matching setLiteral, or "" on no
// match, unknown handle, or malformed literal.
func (r *Registry) Find(handle int, setLiteral string) string {
	t, ok := r.trie(handle)
	if !ok {
		return ""
	}
	elems, err := ParseSetLiteral(setLiteral)
	if err != nil {
		return ""
	}
	return t.Find(elems)
}

// Supersets returns an iterator handle over the labels of stored
// supersets of setLiteral. 0 on unknown handle or malformed literal.
func (r *Registry) Supersets(handle int, setLiteral string) int {
	return r.query(handle, setLiteral, (*settrie.Trie).Supersets)
}

// Subsets returns an iterator handle over the labels of stored subsets
// of setLiteral. 0 on unknown handle or malformed literal.
func (r *Registry) Subsets(handle int, setLiteral string) int {
	return r.query(handle, setLiteral, (*settrie.Trie).Subsets)
}

func (r *Registry) query(handle int, setLiteral string, op func(*settrie.Trie, []settrie.Element) []string) int {
	t, ok := r.trie(handle)
	if !ok {
		return 0
	}
	elems, err := ParseSetLiteral(setLiteral)
	if err != nil {
		return 0
	}
	return r.newIteratorHandle(op(t, elems))
}

// NextSetID returns the next stored-set id after prev (settrie.IterStart
// to begin), settrie.IterEnd when exhausted, or −3 on an unknown handle.
func (r *Registry) NextSetID(handle, prev int) int {
	t, ok := r.trie(handle)
	if !ok {
		return -3
	}
	return t.NextSetID(prev)
}

// SetName returns the label of the set identified by id, or "".
func (r *Registry) SetName(handle, id int) string {
	t, ok := r.trie(handle)
	if !ok {
		return ""
	}
	name, _ := t.SetName(id)
	return name
}

// Elements returns an iterator handle over the textual tokens of the
// set identified by id. Returns 0 both for an invalid id and for the
// empty set; callers must tolerate either reading as "no elements".
func (r *Registry) Elements(handle, id int) int {
	t, ok := r.trie(handle)
	if !ok {
		return 0
	}
	elems, err := t.Elements(id)
	if err != nil || len(elems) == 0 {
		return 0
	}
	tokens := make([]string, len(elems))
	for i, e := range elems {
		tokens[i] = settrie.Tokenize(e)
	}
	return r.newIteratorHandle(tokens)
}

// Remove deletes a stored set by integer id or by label. Returns 0 on
// success, a negative code on error (bad handle, not found).
func (r *Registry) Remove(handle int, idOrLabel interface{}) int {
	t, ok := r.trie(handle)
	if !ok {
		return -3
	}
	var err error
	switch v := idOrLabel.(type) {
	case int:
		err = t.RemoveByID(v)
	case string:
		err = t.RemoveByLabel(v)
	default:
		return -1
	}
	if err != nil {
		return -1
	}
	return 0
}

// Purge runs two-phase reclamation: dryRun counts reclaimable nodes
// without mutating, otherwise it reclaims them.
func (r *Registry) Purge(handle int, dryRun bool) int {
	t, ok := r.trie(handle)
	if !ok {
		return 0
	}
	return t.Purge(dryRun)
}

// IteratorSize, IteratorNext, DestroyIterator back Result-style
// iteration for both query-result and element iterator handles.
func (r *Registry) IteratorSize(handle int) int {
	it, ok := r.iterators[handle]
	if !ok {
		return 0
	}
	return it.size()
}

func (r *Registry) IteratorNext(handle int) string {
	it, ok := r.iterators[handle]
	if !ok {
		return ""
	}
	v, _ := it.next()
	return v
}

// DestroyIterator is a no-op on an unknown handle.
func (r *Registry) DestroyIterator(handle int) {
	if r.iterators == nil {
		return
	}
	delete(r.iterators, handle)
}

// SaveAsBinaryImage serializes handle's trie and returns an image
// handle the caller drains with BinaryImageSize/BinaryImageNext.
func (r *Registry) SaveAsBinaryImage(handle int) int {
	t, ok := r.trie(handle)
	if !ok {
		return 0
	}
	r.init()
	h := r.alloc()
	r.images[h] = newImage(t.Save())
	return h
}

// PushBinaryImageBlock accumulates one block of a load-in-progress
// stream for handle. Pushing an empty block commits: the accumulated
// blocks are validated and loaded, replacing handle's trie on success.
// On failure the trie is reset to empty and false is returned; a bad
// handle also returns false.
func (r *Registry) PushBinaryImageBlock(handle int, block string) bool {
	if _, ok := r.trie(handle); !ok {
		return false
	}
	r.init()
	if len(block) == 0 {
		buf := r.loadBufs[handle]
		buf = append(buf, []byte{})
		loaded, err := settrie.Load(buf)
		delete(r.loadBufs, handle)
		if err != nil {
			r.tries[handle] = settrie.New()
			return false
		}
		r.tries[handle] = loaded
		return true
	}
	r.loadBufs[handle] = append(r.loadBufs[handle], []byte(block))
	return true
}

// BinaryImageSize, BinaryImageNext, DestroyBinaryImage drain and
// release a handle returned by SaveAsBinaryImage.
func (r *Registry) BinaryImageSize(handle int) int {
	im, ok := r.images[handle]
	if !ok {
		return 0
	}
	return im.size()
}

func (r *Registry) BinaryImageNext(handle int) string {
	im, ok := r.images[handle]
	if !ok {
		return ""
	}
	v, _ := im.next()
	return v
}

func (r *Registry) DestroyBinaryImage(handle int) {
	if r.images == nil {
		return
	}
	delete(r.images, handle)
}

func (r *Registry) trie(handle int) (*settrie.Trie, bool) {
	if r.tries == nil {
		return nil, false
	}
	t, ok := r.tries[handle]
	return t, ok
}

func (r *Registry) newIteratorHandle(items []string) int {
	r.init()
	h := r.alloc()
	r.iterators[h] = newIterator(items)
	return h
}

func (r *Registry) init() {
	if r.tries == nil {
		r.tries = make(map[int]*settrie.Trie)
	}
	if r.loadBufs == nil {
		r.loadBufs = make(map[int][][]byte)
	}
	if r.iterators == nil {
		r.iterators = make(map[int]*iterator)
	}
	if r.images == nil {
		r.images = make(map[int]*image)
	}
}

func (r *Registry) alloc() int {
	r.next++
	return r.next
}
