// Package ui implements the terminal dialogs used in dialog mode with bubbletea's Elm architecture.
//
// Each dialog is a small program that runs full screen until answered:
//   - [ChooserModel] : pick one of the candidates for a low-confidence song (enter or 1-9 selects, esc/s skips)
//   - [ConfirmModel] : yes/no question, used before publishing a playlist
//   - [PickerModel] : browse for the OAuth client secret JSON file
//
// [DialogChooser] adapts [ChooserModel] to matcher.Chooser, so the resolver stays unaware of the terminal.
// Pressing q quits the dialog and calls [DialogChooser.OnQuit], which the CLI uses to cancel the run.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
