package server

import (
	"encoding/json"
	"errors"
	"net/http"

	slogctx "github.com/veqryn/slog-context"

	"github.com/redhi-dex/wallet-connector/internal/connector"
	"github.com/redhi-dex/wallet-connector/internal/serviceerr"
)

// walletAPI exposes the connector to out-of-process consumers. Provider
// rejections come back as ordinary verdict payloads; only the pre-dispatch
// gates (provider unavailable, not connected) map to error status codes.
type walletAPI struct {
	connector *connector.Connector
}

type connectRequest struct {
	Username string `json:"username"`
}

type connectResponse struct {
	Connected bool            `json:"connected"`
	State     connector.State `json:"state"`
}

func (api *walletAPI) state(w http.ResponseWriter, r *http.Request) {
	// Each poll of the state doubles as the external re-invocation of
	// presence detection for providers injected after the deferred
	// re-check.
	api.connector.RefreshPresence(r.Context())

	writeJSON(w, http.StatusOK, api.connector.State())
}

func (api *walletAPI) connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	connected, err := api.connector.ConnectWallet(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, serviceerr.ErrProviderUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		slogctx.Error(r.Context(), "Connect wallet failed", "error", err)
		writeError(w, http.StatusInternalServerError, "connecting wallet")
		return
	}

	writeJSON(w, http.StatusOK, connectResponse{
		Connected: connected,
		State:     api.connector.State(),
	})
}

func (api *walletAPI) disconnect(w http.ResponseWriter, r *http.Request) {
	api.connector.Disconnect(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (api *walletAPI) sign(w http.ResponseWriter, r *http.Request) {
	var operation json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&operation); err != nil {
		writeError(w, http.StatusBadRequest, "operation must be valid JSON")
		return
	}

	verdict, err := api.connector.SignTransaction(r.Context(), operation)
	if err != nil {
		if errors.Is(err, serviceerr.ErrNotConnected) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		slogctx.Error(r.Context(), "Sign transaction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signing transaction")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
