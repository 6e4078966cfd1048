// Package content loads the authored course library from YAML files and
// checks it for authoring defects.
package content

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed library
var libraryFS embed.FS

// Embedded returns the library compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(libraryFS, "library")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source picks CONTENT_DIR when set, otherwise the embedded library.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}
