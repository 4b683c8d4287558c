// Package testutil provides testing utilities for bitframe.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic random categorical data and renders it as
// delimited text that the row source can read back.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	bits := rng.Bools(100)
//	col := rng.Categorical(1000, 8) // 1000 values drawn from 8 distinct ones
//
// # Delimited Text
//
//	text := testutil.Delimited(',', []string{"X", "Y"}, rows)
package testutil
