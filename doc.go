/*
Package envswitch is a declarative environment switcher for tiling window
managers.

A catalog (ENVIRONMENTS.yaml) names work contexts such as projects or roles.
For each environment envswitch can generate launcher and session files
(Spacemacs desktop entries, tmuxinator configs, Chromium data-dir launchers)
and rename the live i3/sway workspaces to the environment's labels.

# Workspace reconciliation

Switching reads the live workspace list, matches each declared slot to the
first workspace named "N" or "N:...", and renames only what differs:

	wm_workspace_names:
	  1: code
	  2: web

turns workspaces "1" and "2:old" into "1:code" and "2:web". Running it again
issues no renames. A failed rename is reported and the rest still run.

# Usage

	eng, err := envswitch.New("ENVIRONMENTS.yaml", envswitch.WithOutput(os.Stdout, false))
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Switch(ctx, "dev")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Succeeded(), "workspaces renamed")
*/
package envswitch
