// Package genedist computes a generalized edit distance between a search
// string and dictionary entries, where the catalogue of edit operations
// extends beyond single-character add/remove/replace with a user-supplied
// set of multi-character string rewrites, each carrying its own cost.
//
// The package has three layers, built in this order:
//
//  1. Three rewrite tries (InsertTrie, DeleteTrie, ReplaceTrie, see trie.go,
//     insdel_trie.go and replace_trie.go) index the rewrite catalogue so that
//     every rule applicable at a text position can be enumerated in time
//     linear in the longest matching rule.
//  2. A dynamic-programming Engine (engine.go) fills a cost table combining
//     classical single-character edits with the trie-driven rewrites,
//     across four match shapes (full, prefix, suffix, infix) and two
//     orthogonal penalty masks that forbid or discourage edits inside
//     marked substrings of the search string.
//  3. A backtrace engine (backtrace.go) walks the filled table and
//     reconstructs every minimum-cost alignment as a tree of transformation
//     chains.
//
// An Engine is built once from a catalogue file and a case-fold table, then
// reused read-only across queries: LoadCatalogue (catalogue.go) parses the
// file and NewEngine builds the Engine from the result. Everything allocated for a single query (the cost table,
// the backtrace tree, top-N lists, mask vectors) belongs to that query and
// is released when it goes out of scope. The package is not safe for
// concurrent queries that share a mutable Query value, though a single
// Engine may be shared read-only across goroutines scanning disjoint
// partitions of a dictionary.
package genedist
