/*
Package ports defines the driven ports (interfaces) for the envswitch engine.

These interfaces decouple the reconciliation core from the window manager and
from storage, so the matching logic can be exercised without a live desktop.

# Key Interfaces

  - WorkspaceClient: Lists and renames workspaces through the window manager's IPC.
  - RecordStore: Persists the trace of the last environment activations.
  - Locker: Serializes activations across processes.
*/
package ports
