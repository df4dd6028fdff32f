package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/", h.IndexHandler).Methods("GET")
	r.HandleFunc("/index.html", h.IndexHandler).Methods("GET")
	r.HandleFunc("/view", h.ViewHandler).Methods("GET")
	r.HandleFunc("/submit", h.SubmitHandler).Methods("POST")
	r.HandleFunc("/events", h.EventsHandler).Methods("GET")
	r.HandleFunc("/api/records", h.RecordsHandler).Methods("GET")
	r.HandleFunc("/api/groups", h.GroupsHandler).Methods("GET")
	return r
}
