package commons

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Server carries the shared dependencies of an HTTP surface.
type Server struct {
	Logger *logrus.Logger
}

type HttpResp struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func WriteJSONResponse(w http.ResponseWriter, httpStatus int, data HttpResp) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	json.NewEncoder(w).Encode(data)
}

func WriteSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	WriteJSONResponse(w,
		http.StatusOK,
		HttpResp{Status: "success", Data: data, Message: message})
}

func WriteErrorResponse(w http.ResponseWriter, message string, httpStatus int) {
	WriteJSONResponse(w,
		httpStatus,
		HttpResp{Status: "error", Data: nil, Message: message})
}

// GetEnv returns the value of an environment variable, or fallback when it
// is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getClientIP(r *http.Request) string {
	// X-Forwarded-For can have multiple IPs; the first one is usually the
	// original client IP
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	clientIP, _, _ := net.SplitHostPort(r.RemoteAddr)
	return clientIP
}
