package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL(server.URL)
}

func TestCallSuccess(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"id":"u_1"}}`))
	})

	data, err := client.Call(context.Background(), http.MethodGet, "/users/profile", nil, "token-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u_1"}`, string(data))
}

func TestCallErrorTaxonomy(t *testing.T) {
	t.Run("unreachable server is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClientWithBaseURL(server.URL)

		_, err := client.Call(context.Background(), http.MethodGet, "/users/profile", nil, "")
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Contains(t, transportErr.Op, "/users/profile")
	})

	t.Run("non-2xx with envelope keeps the server message", func(t *testing.T) {
		client := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"error":"user not found"}`))
		})

		_, err := client.Call(context.Background(), http.MethodGet, "/users/u_9", nil, "")
		var responseErr *ResponseError
		require.ErrorAs(t, err, &responseErr)
		assert.Equal(t, http.StatusNotFound, responseErr.Status)
		assert.Equal(t, "user not found", responseErr.Message)
	})

	t.Run("non-2xx without envelope falls back to the status line", func(t *testing.T) {
		client := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		})

		_, err := client.Call(context.Background(), http.MethodGet, "/posts", nil, "")
		var responseErr *ResponseError
		require.ErrorAs(t, err, &responseErr)
		assert.Equal(t, http.StatusBadGateway, responseErr.Status)
		assert.NotEmpty(t, responseErr.Message)
	})

	t.Run("unparseable 2xx body is a protocol error", func(t *testing.T) {
		client := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		})

		_, err := client.Call(context.Background(), http.MethodGet, "/posts", nil, "")
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
	})

	t.Run("2xx with success=false is a response error", func(t *testing.T) {
		client := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
		})

		_, err := client.Call(context.Background(), http.MethodPost, "/posts", map[string]string{"content": "x"}, "")
		var responseErr *ResponseError
		require.ErrorAs(t, err, &responseErr)
		assert.Equal(t, "quota exceeded", responseErr.Message)
	})
}

func TestField(t *testing.T) {
	payload := []byte(`{"token":"abc","user":{"id":"u_1"},"gone":null}`)

	t.Run("present key", func(t *testing.T) {
		value, err := Field(payload, "token")
		require.NoError(t, err)
		assert.Equal(t, `"abc"`, string(value))
	})

	t.Run("absent key is a protocol error naming the field", func(t *testing.T) {
		_, err := Field(payload, "missing")
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
		assert.Equal(t, "missing", protocolErr.Field)
	})

	t.Run("null key counts as absent", func(t *testing.T) {
		_, err := Field(payload, "gone")
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
	})

	t.Run("non-object payload is a protocol error", func(t *testing.T) {
		_, err := Field([]byte(`[1,2,3]`), "token")
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
	})
}

func TestBind(t *testing.T) {
	t.Run("shape mismatch is a protocol error", func(t *testing.T) {
		var dest struct {
			Count int `json:"count"`
		}
		err := Bind([]byte(`{"count":"not a number"}`), &dest)
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
	})

	t.Run("empty payload is a protocol error", func(t *testing.T) {
		var dest map[string]string
		err := Bind(nil, &dest)
		var protocolErr *ProtocolError
		require.ErrorAs(t, err, &protocolErr)
	})
}
