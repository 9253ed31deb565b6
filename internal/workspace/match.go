package workspace

import (
	"sort"
	"strings"

	"github.com/aretw0/envswitch/pkg/domain"
)

// Match computes the renames needed to give every declared slot its label.
// Slots are processed independently; the result is ordered by slot.
func Match(names map[int]string, live []domain.LiveWorkspace) []domain.RenameOperation {
	slots := make([]int, 0, len(names))
	for slot := range names {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	var ops []domain.RenameOperation
	for _, slot := range slots {
		source := domain.SlotName(slot)
		if candidates := Candidates(slot, live); len(candidates) > 0 {
			// First in backend order wins, see DESIGN.md.
			source = candidates[0].Name
		}

		target := domain.TargetName(slot, names[slot])
		if source == target {
			continue
		}
		ops = append(ops, domain.RenameOperation{
			Slot:   slot,
			Source: source,
			Target: target,
		})
	}
	return ops
}

// Candidates returns every live workspace addressing slot, either as the bare
// number or with a "N:" prefix, in backend order.
func Candidates(slot int, live []domain.LiveWorkspace) []domain.LiveWorkspace {
	plain := domain.SlotName(slot)
	prefix := plain + ":"

	var found []domain.LiveWorkspace
	for _, ws := range live {
		if ws.Name == plain || strings.HasPrefix(ws.Name, prefix) {
			found = append(found, ws)
		}
	}
	return found
}
