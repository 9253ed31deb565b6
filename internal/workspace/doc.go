/*
Package workspace reconciles declared workspace labels with the live window-manager state.

The pipeline is Query -> Match -> Renamer.Apply. Query never fails (a broken IPC
channel degrades to an empty list), Match is pure, and Apply submits each rename
independently so one rejected slot never blocks the others.
*/
package workspace
