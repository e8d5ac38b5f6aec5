// Package search implements the hybrid retrieval fusion engine.
//
// Given a natural-language query, the engine searches one or more
// logically partitioned document collections using both dense vector
// similarity and lexical keyword matching, merges the two result sets
// into a single ranked list with deduplication, optionally reranks
// using secondary content-derived signals, and does so resiliently
// across many independent collections searched in parallel.
//
// The pipeline for one collection:
//
//	query text ──► KeywordExtractor ──► tokens ──► KeywordExecutor ──┐
//	query text ──► embedding.Client ──► vector ──► SemanticExecutor ─┤
//	                                                                 ▼
//	                                          FuseHits ──► Reranker ──► hits
//
// The Orchestrator fans this pipeline out across all target
// collections concurrently, isolates per-collection failures, and
// merges the per-collection ranked lists into one globally sorted,
// thresholded, windowed result.
//
// Per-branch and per-collection failures never abort the fan-out: they
// are logged, counted, and substituted with empty results. Only two
// things fail a query outright: an invalid query configuration and an
// embedding-service failure (without a vector the semantic branch is
// impossible, and silently degrading to keyword-only would misreport
// confidence — that fallback is an explicit caller decision).
package search
