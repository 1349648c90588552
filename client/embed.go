// Package client embeds the browser script that drives live pages.
package client

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed src/*.js
var assets embed.FS

// Assets returns the embedded filesystem containing JavaScript files.
func Assets() fs.FS {
	fsys, err := fs.Sub(assets, "src")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Handler serves the embedded scripts. Mount it under a stripped prefix.
func Handler() http.Handler {
	fileServer := http.FileServer(http.FS(Assets()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	})
}

// MustGetFile returns the contents of an embedded file.
// Panics if the file doesn't exist.
func MustGetFile(name string) []byte {
	data, err := assets.ReadFile("src/" + name)
	if err != nil {
		panic(err)
	}
	return data
}
