// Package batch generates normal maps for every eligible material of a
// manifest.
//
// A Selector decides which materials are eligible from a category
// allow-list. A Driver runs the eligible ones through asset.Source, a
// normalmap.Generator and asset.Sink with bounded concurrency. Failures of
// single materials are collected in the Report and never stop the batch.
// Watch re-runs a batch when its inputs change on disk.
package batch
