// Command settriedemo exercises insert, find, subset/superset queries
// and the save/load round-trip end to end.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bbva/settrie-go/settrie"
)

func main() {
	verbose := term.IsTerminal(int(os.Stdout.Fd()))

	t := settrie.New()
	t.Insert([]settrie.Element{settrie.Int(2), settrie.Int(3), settrie.Int(4)}, "id2")
	t.Insert([]settrie.Element{settrie.Int(2), settrie.Int(3), settrie.Int(4), settrie.Int(5)}, "id4")
	t.Insert([]settrie.Element{settrie.String("Mon"), settrie.String("Tue")}, "days")

	fmt.Printf("stored sets: %d\n", t.Len())

	find := []settrie.Element{settrie.Int(4), settrie.Int(3), settrie.Int(2)}
	fmt.Printf("find({4,3,2}) = %q\n", t.Find(find))

	for _, label := range t.Supersets([]settrie.Element{settrie.Int(2), settrie.Int(3)}) {
		fmt.Printf("superset of {2,3}: %s\n", label)
	}
	for _, label := range t.Subsets([]settrie.Element{settrie.Int(2), settrie.Int(3), settrie.Int(4)}) {
		fmt.Printf("subset of {2,3,4}: %s\n", label)
	}

	blocks := t.Save()
	if verbose {
		fmt.Printf("serialized to %d blocks\n", len(blocks))
	}

	loaded, err := settrie.Load(blocks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("reloaded trie has %d sets\n", loaded.Len())

	if err := t.RemoveByLabel("days"); err != nil {
		fmt.Fprintf(os.Stderr, "remove failed: %v\n", err)
		os.Exit(1)
	}
	reclaimed := t.Purge(false)
	fmt.Printf("purge reclaimed %d nodes\n", reclaimed)
}
