package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fajrulhm/perpus-admin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListNormalizesBothShapes(t *testing.T) {
	bare := []byte(`[{"id":1,"judul":"Bumi Manusia"},{"id":2,"judul":"Laskar Pelangi"}]`)
	wrapped := []byte(`{"data":[{"id":1,"judul":"Bumi Manusia"},{"id":2,"judul":"Laskar Pelangi"}]}`)

	fromBare, err := decodeList[model.Book](bare)
	require.NoError(t, err)
	fromWrapped, err := decodeList[model.Book](wrapped)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromWrapped)
	require.Len(t, fromBare, 2)
	assert.Equal(t, "Bumi Manusia", fromBare[0].Title)
}

func TestDecodeListEmptyVariants(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `{"data":null}`, `{"data":[]}`} {
		list, err := decodeList[model.Book]([]byte(body))
		require.NoError(t, err, "body %q", body)
		assert.Empty(t, list, "body %q", body)
	}
}

func TestDecodeOneNormalizesBothShapes(t *testing.T) {
	bare := []byte(`{"id":7,"nama":"Siti"}`)
	wrapped := []byte(`{"message":"created","data":{"id":7,"nama":"Siti"}}`)

	fromBare, err := decodeOne[model.Member](bare)
	require.NoError(t, err)
	fromWrapped, err := decodeOne[model.Member](wrapped)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromWrapped)
	assert.Equal(t, "Siti", fromBare.Name)
}

func TestAmountAcceptsStringAndNumber(t *testing.T) {
	var f model.Fine
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"jumlah_denda":"7500"}`), &f))
	assert.Equal(t, model.Amount(7500), f.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"jumlah_denda":1500}`), &f))
	assert.Equal(t, model.Amount(1500), f.Amount)

	raw, err := json.Marshal(model.FineFields{Amount: 7500, Type: model.FineTypeLate})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"jumlah_denda":"7500"`)
}

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "admin@perpus.id" || creds.Password != "rahasia" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "bearer-123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "admin@perpus.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "bearer-123", token)

	_, err = c.Login(context.Background(), "admin@perpus.id", "salah")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListLoans(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestReturnLoanHitsTheDedicatedEndpoint(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.ReturnLoan(context.Background(), "tok", 42))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/peminjaman/pengembalian/42", gotPath)
}

func TestRemoteFailureWrapsErrRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListBooks(context.Background(), "tok")
	require.ErrorIs(t, err, ErrRemote)
}

func TestCreateFineSendsWireFields(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": 9}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	created, err := c.CreateFine(context.Background(), "tok", model.FineFields{
		MemberID:    1,
		BookID:      7,
		Amount:      7500,
		Type:        model.FineTypeLate,
		Description: "Late by 5 days",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, float64(1), got["id_member"])
	assert.Equal(t, float64(7), got["id_buku"])
	assert.Equal(t, "7500", got["jumlah_denda"])
	assert.Equal(t, "late", got["jenis_denda"])
	assert.Equal(t, "Late by 5 days", got["deskripsi"])
}
