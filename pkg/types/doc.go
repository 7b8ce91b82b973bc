// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the health-report pipeline:
// source documents and selectors (pipeline input), content items (pipeline
// output), chart score records, and stage configuration.
package types
