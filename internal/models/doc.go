// Package models defines the value types that flow through the ytfolder pipeline.
//
// The pipeline turns a folder of audio files into a YouTube multi-video playlist:
//   - [SongQuery] : what to search for and what to show a human, built by the scanner
//   - [Candidate] : one search result returned by a search provider
//   - [MatchResult] : a resolved song, accumulated in input order (duplicates allowed)
//
// [Mode] selects how low-confidence matches are put in front of a human and
// [Outcome] records how a single resolution ended.
//
// All types are immutable values once built.
package models
