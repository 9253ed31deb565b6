// Package actions runs the per-environment generator actions: the Spacemacs
// launcher script and the tmuxinator and Chromium templates.
//
// Actions are independent of each other and of workspace renaming. A failed
// or skipped action is reported and the next one runs.
package actions
