// Package config builds a dustfs Registry from a YAML file:
//
//	dirs: [templates, shared]
//	extension: .dust
//	debug: true
//	delims: {left: "[[", right: "]]"}
//	missing_key: error
//
// Unknown keys are rejected.
package config
