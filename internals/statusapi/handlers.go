// Package statusapi exposes a small local HTTP endpoint reporting the
// plugin's connection state and send counters. It stays disabled unless an
// address is configured.
package statusapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"TPWebsockets/internals/commons"
	"TPWebsockets/internals/plugin"
)

type Server struct {
	*commons.Server
	Plugin *plugin.Plugin
	Addr   string
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.LoggingMiddleware())
	router.HandleFunc("/status", s.handleStatus).Methods("GET")
	return router
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	commons.WriteSuccessResponse(w, "", s.Plugin.Status())
}

func (s *Server) ListenAndServe() error {
	s.Logger.WithField("addr", s.Addr).Info("Status endpoint listening")
	return http.ListenAndServe(s.Addr, s.Router())
}
