// Package appfs holds the files embedded into the binaries: seed fixtures and email templates.
package appfs

import "embed"

//go:embed fixtures/*.yaml templates/email/*.txt
var FS embed.FS
