package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsDefaultsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k-1", r.Header.Get("apikey"))
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["email"]})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Headers: map[string]string{"apikey": "k-1"}})
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "auth/v1/token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   map[string]string{"email": "a@b.c"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", out.Echo)
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), Request{Path: "/x"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestResolveURL_RequiresBase(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Error(t, c.DoJSON(context.Background(), Request{Path: "/relative"}, nil))

	_, err = New(Options{BaseURL: "::bad"})
	assert.Error(t, err)
}
