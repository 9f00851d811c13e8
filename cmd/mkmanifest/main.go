// mkmanifest creates a small representative manifest fixture from a full export.
// Entries are bucketed by trait so the fixture keeps located, unlocated and video entries.
// Usage: go run ./cmd/mkmanifest --in json/memories_history.json --out testdata/memories-small.json --entries 50
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gyeh/memdl/internal/manifest"
	"github.com/gyeh/memdl/internal/normalize"
)

func main() {
	in := flag.String("in", "json/memories_history.json", "input manifest")
	out := flag.String("out", "testdata/memories-small.json", "output manifest")
	maxEntries := flag.Int("entries", 50, "max entries to output")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	doc, err := manifest.Read(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}

	type bucket struct {
		name    string
		entries []manifest.Entry
		want    int
	}
	buckets := []*bucket{
		{name: "video", want: *maxEntries / 5},
		{name: "located", want: *maxEntries / 3},
		{name: "unlocated", want: *maxEntries / 5},
		{name: "general", want: *maxEntries},
	}
	byName := make(map[string]*bucket)
	for _, b := range buckets {
		byName[b.name] = b
	}
	room := func(name string) bool {
		b := byName[name]
		return len(b.entries) < b.want
	}

	counts := make(map[string]int)
	for _, e := range doc.SavedMedia {
		_, _, located := normalize.ParseCoordinates(e.Location)
		video := strings.EqualFold(e.MediaType, "Video")
		if located {
			counts["located"]++
		}
		if video {
			counts["video"]++
		}

		switch {
		case video && room("video"):
			byName["video"].entries = append(byName["video"].entries, e)
		case located && room("located"):
			byName["located"].entries = append(byName["located"].entries, e)
		case !located && room("unlocated"):
			byName["unlocated"].entries = append(byName["unlocated"].entries, e)
		case room("general"):
			byName["general"].entries = append(byName["general"].entries, e)
		}
	}
	fmt.Printf("Scanned %d entries (%d located, %d video)\n", len(doc.SavedMedia), counts["located"], counts["video"])
	if *checkOnly {
		return
	}

	// Merge buckets in priority order
	selected := make([]manifest.Entry, 0, *maxEntries)
	for _, b := range buckets {
		for _, e := range b.entries {
			if len(selected) >= *maxEntries {
				break
			}
			selected = append(selected, e)
		}
	}

	if err := manifest.Write(*out, &manifest.Document{SavedMedia: selected}); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d entries to %s\n", len(selected), *out)
	for _, b := range buckets {
		fmt.Printf("  %-10s %d\n", b.name, len(b.entries))
	}
}
