// Package selection decides which subdirectories of a root count as managed
// repositories. Candidates pass a fixed chain of predicates evaluated
// cheapest-first; results are returned in lexicographic order so downstream
// processing is deterministic.
package selection
