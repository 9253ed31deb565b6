/*
Package config loads the environment catalog.

The catalog is a YAML document with three sections:

	environments:   # ordered list of environments
	  - name: dev
	    wm_workspace_names: {1: code, 2: term}
	global: {}      # free-form context shared by all templates
	templates: {}   # free-form named template context

Environments are decoded into domain.Environment; keys the engine does not
know about are kept in Environment.Extra for the templates.
*/
package config
