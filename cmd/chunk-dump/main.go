// Command chunk-dump prints the chunk tree of a WAVE file. It is handy for
// checking what a recorder actually wrote before reaching for a decoder.
//
// Usage:
//
//	chunk-dump <file.wav>
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simonhull/wavmeta"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: chunk-dump <file.wav>")
		os.Exit(1)
	}

	if err := dump(os.Stdout, os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, path string) error {
	file, err := wavmeta.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(w, "%s (%s, %d bytes)\n", file.Path, file.Format, file.Size)
	for c := range file.Chunks() {
		indent := strings.Repeat("  ", c.Depth)
		if c.IsList() {
			fmt.Fprintf(w, "%s[%s/%s] offset=%d length=%d\n", indent, c.ID, c.Signature, c.Offset, c.Length)
			continue
		}
		fmt.Fprintf(w, "%s[%s] offset=%d length=%d\n", indent, c.ID, c.Offset, c.Length)
	}
	return nil
}
