package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Ingest stores output/results/items.yaml as a new run in the item store.
func Ingest() error {
	mg.SerialDeps(Extract)
	return sh.RunV(binPath, "store", "ingest", resultsPath)
}
