package settrie

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// imageVersion is bumped whenever the block schema changes incompatibly.
const imageVersion = "1"

// Save serializes the arena into a self-describing sequence of
// bounded-length text blocks: a header, one block per node in preorder
// DFS order over each node's sorted children (parent always precedes
// child, and siblings are emitted in ascending token order), a
// checksum block, and a final empty block as end-of-stream sentinel.
//
// Arena ids are assigned by creation time, not by sorted-sibling
// order, so two children of the same parent inserted out of token
// order (e.g. "3" created before "2") would otherwise land in the
// stream in the wrong order for Load's sibling-ordering check. Save
// walks the tree itself and renumbers nodes by traversal position,
// the same way arena.compact's rebuild does.
func (t *Trie) Save() [][]byte {
	order := make([]*node, 0, len(t.arena.nodes))
	newID := make(map[int]int, len(t.arena.nodes))
	var walk func(n *node)
	walk = func(n *node) {
		newID[n.id] = len(order)
		order = append(order, n)
		for _, e := range n.children {
			walk(t.arena.nodeForID(e.id))
		}
	}
	walk(t.arena.root())

	blocks := make([][]byte, 0, len(order)+3)
	blocks = append(blocks, []byte(encodeField(imageVersion)+encodeField(strconv.Itoa(len(order)))))

	for _, n := range order {
		parent := noParent
		if n.parent != noParent {
			parent = newID[n.parent]
		}
		blocks = append(blocks, encodeNodeBlock(n, parent))
	}

	var sum strings.Builder
	for _, b := range blocks {
		sum.Write(b)
	}
	checksum := hex.EncodeToString(checksumOf(sum.String()))
	blocks = append(blocks, []byte("C"+encodeField(checksum)))

	blocks = append(blocks, []byte{}) // end-of-stream sentinel
	return blocks
}

// Load reconstructs a Trie from blocks previously produced by Save (or
// streamed one at a time through an image writer that mirrors it).
// On any structural validation failure the operation returns
// ErrMalformedImage and no partial Trie.
func Load(blocks [][]byte) (*Trie, error) {
	if len(blocks) == 0 || len(blocks[len(blocks)-1]) != 0 {
		return nil, ErrMalformedImage
	}
	body := blocks[:len(blocks)-1]
	if len(body) < 2 {
		return nil, ErrMalformedImage
	}

	checksumBlock := body[len(body)-1]
	payload := body[:len(body)-1]

	wantHex, err := decodeChecksumBlock(checksumBlock)
	if err != nil {
		return nil, ErrMalformedImage
	}
	var sum strings.Builder
	for _, b := range payload {
		sum.Write(b)
	}
	if hex.EncodeToString(checksumOf(sum.String())) != wantHex {
		return nil, ErrMalformedImage
	}

	header := payload[0]
	nodeBlocks := payload[1:]

	_, count, err := parseHeaderBlock(header)
	if err != nil {
		return nil, ErrMalformedImage
	}
	if count != len(nodeBlocks) {
		return nil, ErrMalformedImage
	}

	a := newArena()
	lastChildToken := make(map[int]string)

	for id := 0; id < count; id++ {
		parentIdx, token, flag, label, err := parseNodeBlock(nodeBlocks[id])
		if err != nil {
			return nil, ErrMalformedImage
		}
		if id == 0 {
			if parentIdx != noParent {
				return nil, ErrMalformedImage
			}
			applyNodeFlag(a, a.root(), flag, label)
			continue
		}
		if parentIdx < 0 || parentIdx >= id {
			return nil, ErrMalformedImage
		}
		parentNode := a.nodeForID(parentIdx)
		if parentNode == nil {
			return nil, ErrMalformedImage
		}
		if last, ok := lastChildToken[parentIdx]; ok && token <= last {
			return nil, ErrMalformedImage
		}
		lastChildToken[parentIdx] = token
		child := a.newChild(parentNode, token)
		if child.id != id {
			return nil, ErrMalformedImage
		}
		applyNodeFlag(a, child, flag, label)
	}

	return &Trie{arena: a}, nil
}

// NewFromImage is a convenience constructor wrapping Load, mirroring
// the Python binding's `SetTrie(binary_image=...)` constructor kwarg.
func NewFromImage(blocks [][]byte) (*Trie, error) {
	return Load(blocks)
}

// checksumOf returns a 128-bit blake2b digest of s, used as the image
// stream's corruption check. blake2b.New(16, nil) is unkeyed since the
// checksum only needs to catch accidental truncation/corruption, not
// authenticate the source.
func checksumOf(s string) []byte {
	h, err := blake2b.New(16, nil)
	assert(err == nil, "blake2b-128 construction failed: %v", err)
	h.Write([]byte(s))
	return h.Sum(nil)
}

// --- block wire format -----------------------------------------------
//
// Fields within a block are netstring-encoded ("<length>:<payload>,")
// so arbitrary bytes (including digits, colons, commas) round-trip
// without an escaping scheme of their own — unlike the binding layer's
// set-literal text format (binding/literal.go), the image codec owns
// both ends and has no legacy comma-in-string hazard to preserve.

func encodeField(s string) string {
	return strconv.Itoa(len(s)) + ":" + s + ","
}

func readField(s string, pos int) (string, int, error) {
	colon := strings.IndexByte(s[pos:], ':')
	if colon < 0 {
		return "", 0, ErrMalformedImage
	}
	n, err := strconv.Atoi(s[pos : pos+colon])
	if err != nil || n < 0 {
		return "", 0, ErrMalformedImage
	}
	start := pos + colon + 1
	end := start + n
	if end+1 > len(s) || s[end] != ',' {
		return "", 0, ErrMalformedImage
	}
	return s[start:end], end + 1, nil
}

func parseHeaderBlock(b []byte) (version string, count int, err error) {
	s := string(b)
	version, pos, err := readField(s, 0)
	if err != nil {
		return "", 0, err
	}
	countStr, pos, err := readField(s, pos)
	if err != nil {
		return "", 0, err
	}
	if pos != len(s) {
		return "", 0, ErrMalformedImage
	}
	count, err = strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return "", 0, ErrMalformedImage
	}
	return version, count, nil
}

// node flag letters: 'L' live terminal, 'D' dirty (formerly terminal,
// pending compaction), '-' plain structural node. parent is the
// traversal-order id of n's parent, not n's raw arena id.
func encodeNodeBlock(n *node, parent int) []byte {
	flag := "-"
	label := ""
	switch {
	case n.terminal && !n.dirty:
		flag = "L"
		label = n.label
	case n.dirty:
		flag = "D"
	}
	return []byte(strconv.Itoa(parent) + ";" + flag + encodeField(n.token) + encodeField(label))
}

func parseNodeBlock(b []byte) (parentIdx int, token, flag, label string, err error) {
	s := string(b)
	semi := strings.IndexByte(s, ';')
	if semi < 0 || semi+1 >= len(s) {
		return 0, "", "", "", ErrMalformedImage
	}
	parentIdx, err = strconv.Atoi(s[:semi])
	if err != nil {
		return 0, "", "", "", ErrMalformedImage
	}
	flag = s[semi+1 : semi+2]
	if flag != "L" && flag != "D" && flag != "-" {
		return 0, "", "", "", ErrMalformedImage
	}
	pos := semi + 2
	token, pos, err = readField(s, pos)
	if err != nil {
		return 0, "", "", "", err
	}
	label, pos, err = readField(s, pos)
	if err != nil {
		return 0, "", "", "", err
	}
	if pos != len(s) {
		return 0, "", "", "", ErrMalformedImage
	}
	return parentIdx, token, flag, label, nil
}

func applyNodeFlag(a *arena, n *node, flag, label string) {
	switch flag {
	case "L":
		a.markTerminal(n, label)
	case "D":
		n.dirty = true
	}
}

func decodeChecksumBlock(b []byte) (string, error) {
	s := string(b)
	if len(s) < 1 || s[0] != 'C' {
		return "", ErrMalformedImage
	}
	v, pos, err := readField(s, 1)
	if err != nil {
		return "", err
	}
	if pos != len(s) {
		return "", ErrMalformedImage
	}
	return v, nil
}
