// taggenie suggests ranked tags for a video title from autocomplete
// suggestions, bigram expansions and mined metadata of popular videos.
package main

import (
	"os"

	"github.com/foxside/taggenie/cmd/taggenie/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
