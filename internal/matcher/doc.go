// Package matcher decides which search result, if any, corresponds to a song.
//
// # Scoring
//
// [TokenSortRatio] is the "token sort ratio" used by fuzzywuzzy and rapidfuzz: both strings are
// lowercased, stripped of punctuation, split into words, sorted, and compared with an
// indel-normalized similarity in [0,100]. Word order therefore does not matter, so
// "Artist - Song" and "Song Artist" score alike, and the default threshold of 80 keeps its
// usual meaning.
//
// # Resolution
//
// [Resolver.Resolve] runs a two-stage search. The first search appends " official" to the
// query; if its best candidate reaches the threshold it is taken without a second request.
// Otherwise the plain query is searched and scored the same way. When neither search is
// confident the [Chooser] is asked once, with the plain-query results when there are any.
//
// Search failures never abort a batch: they are logged and count as an empty result.
//
// # Collaborators
//
// The resolver depends only on the [Searcher] and [Chooser] interfaces. Console and dialog
// choosers live in the prompt and ui packages; [SkipChooser] abstains for headless runs.
package matcher
