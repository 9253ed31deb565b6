package domain

// Environment is a named work context declared in the configuration file.
// It is constructed once at load time and never mutated afterwards.
type Environment struct {
	Name             string `json:"name" yaml:"name" mapstructure:"name"`
	DisplayName      string `json:"display_name,omitempty" yaml:"display_name,omitempty" mapstructure:"display_name"`
	Role             string `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Language         string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	Framework        string `json:"framework,omitempty" yaml:"framework,omitempty" mapstructure:"framework"`
	Project          string `json:"project,omitempty" yaml:"project,omitempty" mapstructure:"project"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	WorkingDirectory string `json:"working_directory,omitempty" yaml:"working_directory,omitempty" mapstructure:"working_directory"`

	// Action flags
	Spacemacs       bool `json:"spacemacs,omitempty" yaml:"spacemacs,omitempty" mapstructure:"spacemacs"`
	Tmuxinator      bool `json:"tmuxinator,omitempty" yaml:"tmuxinator,omitempty" mapstructure:"tmuxinator"`
	ChromiumDatadir bool `json:"chromium-datadir,omitempty" yaml:"chromium-datadir,omitempty" mapstructure:"chromium-datadir"`

	// WorkspaceNames maps a workspace slot to the label it should carry.
	WorkspaceNames map[int]string `json:"wm_workspace_names,omitempty" yaml:"wm_workspace_names,omitempty" mapstructure:"wm_workspace_names"`

	// Tmuxinator window lists, passed verbatim to the session template.
	TmuxinatorWindowsStart []any `json:"tmuxinator_windows_start,omitempty" yaml:"tmuxinator_windows_start,omitempty" mapstructure:"tmuxinator_windows_start"`
	TmuxinatorWindows      []any `json:"tmuxinator_windows,omitempty" yaml:"tmuxinator_windows,omitempty" mapstructure:"tmuxinator_windows"`
	TmuxinatorWindowsEnd   []any `json:"tmuxinator_windows_end,omitempty" yaml:"tmuxinator_windows_end,omitempty" mapstructure:"tmuxinator_windows_end"`

	// Extra keeps every key the engine does not recognize, for templates.
	Extra map[string]any `json:"extra,omitempty" yaml:"-" mapstructure:",remain"`

	// LoadErr is set when the entry could not be decoded. Only Name is
	// populated in that case.
	LoadErr error `json:"-" yaml:"-" mapstructure:"-"`
}

// Label returns the display name, falling back to the identifier.
func (e Environment) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// HasWorkspaceNames reports whether the environment declares any workspace labels.
func (e Environment) HasWorkspaceNames() bool {
	return len(e.WorkspaceNames) > 0
}
