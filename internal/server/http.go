package server

import (
	_ "embed"
	"log"
	"net/http"

	"LockOnArena/internal/arena"
)

//go:generate go run ./cmd/webbuild

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

func startServer(h *arena.Hub, addr string) {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	http.HandleFunc("/client.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(jsClient)
	})
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, w, r)
	})
	log.Fatal(http.ListenAndServe(addr, nil))
}
