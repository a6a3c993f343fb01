package statusapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TPWebsockets/internals/commons"
	"TPWebsockets/internals/plugin"
)

func TestStatusEndpoint(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server := &Server{
		Server: &commons.Server{Logger: logger},
		Plugin: plugin.New(logger),
	}

	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Status string        `json:"status"`
		Data   plugin.Status `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.False(t, body.Data.Connected)
	assert.Zero(t, body.Data.SendsAttempted)
}

func TestStatusEndpointMethodNotAllowed(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server := &Server{
		Server: &commons.Server{Logger: logger},
		Plugin: plugin.New(logger),
	}

	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/status", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
