package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// PageFS returns an http.FileSystem serving the embedded dashboard page.
func PageFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil
	}
	return http.FS(sub)
}
