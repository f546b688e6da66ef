// Package dustfs is a filesystem-backed template registry on top of a
// template engine (text/template by default). It searches registered
// directories for template files, compiles each name once, and renders by
// name with a context carrying the replace and toFixed block helpers.
//
// Subpackage embedfs loads templates eagerly from an fs.FS; subpackage config
// builds a Registry from a YAML file.
package dustfs
