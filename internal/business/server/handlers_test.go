package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhi-dex/wallet-connector/internal/config"
	"github.com/redhi-dex/wallet-connector/internal/connector"
	"github.com/redhi-dex/wallet-connector/internal/keychain"
	keychainmock "github.com/redhi-dex/wallet-connector/internal/keychain/mock"
	sessionmemory "github.com/redhi-dex/wallet-connector/internal/sessionstore/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseConfig: commoncfg.BaseConfig{
			Application: commoncfg.Application{
				Name: "test-app",
			},
		},
		HTTP: config.HTTPServer{
			Address:         "localhost:0",
			ShutdownTimeout: time.Second,
		},
	}
}

func newTestServer(t *testing.T, provider keychain.Provider) *httptest.Server {
	t.Helper()

	ctx := t.Context()
	cfg := testConfig()
	require.NoError(t, initMeters(ctx, cfg))

	conn := connector.New(provider, sessionmemory.NewStore(), connector.Config{})
	conn.Start(ctx)
	t.Cleanup(conn.Close)

	server := httptest.NewServer(createHTTPServer(ctx, cfg, conn).Handler)
	t.Cleanup(server.Close)

	return server
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestPingHandler(t *testing.T) {
	server := newTestServer(t, keychainmock.NewProvider())

	resp, err := http.Get(server.URL + "/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ping", body["result"])
}

func TestWalletState(t *testing.T) {
	server := newTestServer(t, keychainmock.NewProvider())

	resp, err := http.Get(server.URL + "/v1/wallet")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var state connector.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, connector.State{Installed: true}, state)
}

func TestConnectWallet(t *testing.T) {
	t.Run("provider absent", func(t *testing.T) {
		server := newTestServer(t, keychain.Unavailable{})

		resp := postJSON(t, server.URL+"/v1/wallet/connect", `{"username":"bob"}`)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("missing username", func(t *testing.T) {
		server := newTestServer(t, keychainmock.NewProvider())

		resp := postJSON(t, server.URL+"/v1/wallet/connect", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("signature approved", func(t *testing.T) {
		server := newTestServer(t, keychainmock.NewProvider())

		resp := postJSON(t, server.URL+"/v1/wallet/connect", `{"username":"bob"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body connectResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Connected)
		assert.Equal(t, connector.State{Installed: true, Connected: true, Username: "bob"}, body.State)
	})

	t.Run("signature rejected", func(t *testing.T) {
		provider := keychainmock.NewProvider(
			keychainmock.WithSignBufferVerdict(keychain.Verdict{Success: false}),
		)
		server := newTestServer(t, provider)

		resp := postJSON(t, server.URL+"/v1/wallet/connect", `{"username":"carol"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body connectResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Connected)
		assert.Equal(t, connector.State{Installed: true}, body.State)
	})
}

func TestSignTransaction(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		server := newTestServer(t, keychainmock.NewProvider())

		resp := postJSON(t, server.URL+"/v1/wallet/sign", `{"action":"swap","amount":10}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("operation authorized", func(t *testing.T) {
		provider := keychainmock.NewProvider(
			keychainmock.WithCustomJSONVerdict(keychain.Verdict{Success: true, Result: json.RawMessage(`{"id":"tx-1"}`)}),
		)
		server := newTestServer(t, provider)

		resp := postJSON(t, server.URL+"/v1/wallet/connect", `{"username":"bob"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = postJSON(t, server.URL+"/v1/wallet/sign", `{"action":"swap","amount":10}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var verdict keychain.Verdict
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
		assert.True(t, verdict.Success)
		assert.JSONEq(t, `{"id":"tx-1"}`, string(verdict.Result))
	})

	t.Run("invalid body", func(t *testing.T) {
		server := newTestServer(t, keychainmock.NewProvider())

		resp := postJSON(t, server.URL+"/v1/wallet/sign", `{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDisconnectWallet(t *testing.T) {
	server := newTestServer(t, keychainmock.NewProvider())

	resp := postJSON(t, server.URL+"/v1/wallet/connect", `{"username":"bob"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, server.URL+"/v1/wallet/disconnect", ``)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err := http.Get(server.URL + "/v1/wallet")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state connector.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, connector.State{Installed: true}, state)
}

func TestStartHTTPServer_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	conn := connector.New(keychainmock.NewProvider(), sessionmemory.NewStore(), connector.Config{})
	conn.Start(ctx)
	defer conn.Close()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartHTTPServer(ctx, testConfig(), conn)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
