package workspace

import (
	"context"
	"log/slog"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
)

// Query fetches the live workspace list. Any failure yields an empty list:
// Match falls back to plain slot numbers, which the window manager resolves anyway.
func Query(ctx context.Context, client ports.WorkspaceClient, logger *slog.Logger) []domain.LiveWorkspace {
	live, err := client.GetWorkspaces(ctx)
	if err != nil {
		logger.Warn("Workspace query unavailable, using numeric fallbacks", "error", err)
		return []domain.LiveWorkspace{}
	}

	out := make([]domain.LiveWorkspace, 0, len(live))
	for _, ws := range live {
		out = append(out, domain.LiveWorkspace{
			Name:    ws.Name,
			Visible: ws.Visible,
			Focused: ws.Focused,
		})
	}
	logger.Debug("Workspace query", "count", len(out))
	return out
}
