// Package tasks runs the folder to playlist pipeline with progress reporting.
//
// # Pipeline
//
// [Engine.Run] drives one folder end to end:
//
//  1. Scan: the folder scanner turns audio files into song queries
//     - A missing folder or a folder without audio halts the run
//  2. Resolve: each song is resolved in folder order, one at a time
//     - Per-song failures become outcomes and never stop the batch
//  3. Assemble: matched video IDs are joined into a watch_videos URL
//
// [Engine.Publish] optionally creates the same playlist on a YouTube account and
// [Engine.Export] writes the report to disk through the formatter package.
//
// # Progress Reporting
//
// Every step emits a [ProgressUpdate] to the engine's [Reporter]. Reporters run
// on the calling goroutine so console output stays ordered with chooser prompts.
package tasks
