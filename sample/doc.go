// Package sample draws row samples from tables.
//
// Random and Grouped sample without replacement using a partial
// Fisher-Yates shuffle over row positions. Pass WithSeed for a reproducible
// draw; without it every call uses a fresh entropy-seeded PCG source.
//
//	out, err := sample.Random(tbl, 10, sample.WithSeed(42))
//	out, err := sample.Grouped(tbl, "grade", 3)
//	out, err := sample.Range(tbl, "score", 80, 100)
//
// Spec and Apply express the same three strategies as data:
//
//	out, err := sample.Apply(tbl, sample.ByGroup("grade", 3, nil))
package sample
