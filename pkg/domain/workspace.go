package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LiveWorkspace is one entry of the window manager's workspace list.
// The name may already carry the "N:label" form.
type LiveWorkspace struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
}

// RenameOperation renames the live workspace Source to Target.
// Target is always "{Slot}:{label}" and never equals Source.
type RenameOperation struct {
	Slot   int    `json:"slot"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Label returns the label part of Target.
func (op RenameOperation) Label() string {
	_, label, _ := strings.Cut(op.Target, ":")
	return label
}

// SlotName returns the plain numeric workspace name for a slot.
func SlotName(slot int) string {
	return strconv.Itoa(slot)
}

// TargetName builds the "{slot}:{label}" workspace name.
func TargetName(slot int, label string) string {
	return fmt.Sprintf("%d:%s", slot, label)
}

// ValidateWorkspaceNames checks that every slot is positive and no label contains a colon.
func ValidateWorkspaceNames(names map[int]string) error {
	for slot, label := range names {
		if slot <= 0 {
			return fmt.Errorf("%w: slot %d must be a positive integer", ErrInvalidWorkspaceName, slot)
		}
		if strings.Contains(label, ":") {
			return fmt.Errorf("%w: label %q for slot %d contains ':'", ErrInvalidWorkspaceName, label, slot)
		}
	}
	return nil
}
