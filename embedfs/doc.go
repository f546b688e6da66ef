// Package embedfs builds a dustfs Registry from an fs.FS (typically embed.FS),
// loading every template under a root eagerly at construction. Templates
// are named by their slash path relative to the root, e.g. "partials/nav.dust".
package embedfs
