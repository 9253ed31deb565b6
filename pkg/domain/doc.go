/*
Package domain contains the core domain models for the envswitch engine.

It defines the declared environments, the live window-manager workspace
snapshot and the rename operations computed between the two. This package is
kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Environment: A named, user-declared work context with its desired side effects.
  - LiveWorkspace: The window manager's runtime record of an existing workspace.
  - RenameOperation: A single rename needed to bring a slot in line with its label.
  - RenameReport: The per-operation outcome of a rename batch.
  - ActivationRecord: The persisted trace of the last environment switch.
*/
package domain
