package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/requestctx"
)

func TestFetchCollectionEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":"1"},{"id":"2"}]`},
		{"success data", `{"success":true,"data":[{"id":"1"},{"id":"2"}]}`},
		{"alternate key", `{"jobs":[{"id":"1"},{"id":"2"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			items, err := New(srv.URL, time.Second).FetchCollection(context.Background(), "/jobs")
			require.NoError(t, err)
			require.Len(t, items, 2)
		})
	}
}

func TestFetchCollectionApplicationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchCollection(context.Background(), "/jobs")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindApplication, upErr.Kind)
	assert.Equal(t, "token expired", upErr.Message)
}

func TestFetchCollectionShapeMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":42}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchCollection(context.Background(), "/jobs")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindShape, upErr.Kind)
}

func TestFetchCollectionTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := New(srv.URL, time.Second).FetchCollection(context.Background(), "/jobs")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindTransport, upErr.Kind)
	assert.Error(t, errors.Unwrap(upErr))
}

func TestFetchCollectionForwardsBearerAndAltKeys(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"applications":[{"id":"3"}]}`))
	}))
	defer srv.Close()

	ctx := requestctx.WithBearerToken(context.Background(), "tok-1")
	items, err := New(srv.URL, time.Second).FetchCollection(ctx, "/applications", "applications")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestMutateSuccessFlagFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"cannot delete"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Delete(context.Background(), "/jobs/1")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindApplication, upErr.Kind)
	assert.Equal(t, "cannot delete", upErr.Message)
}

func TestMutateStatusCodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"already approved"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Post(context.Background(), "/leaves/9/approve", nil)

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "already approved", upErr.Message)
}

func TestMutateAcceptsEmptyAndPlainBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Put(context.Background(), "/applications/3/status", map[string]string{"status": "interview"})
	assert.NoError(t, err)
}
