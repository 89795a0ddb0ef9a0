// Package api is the outbound client for the remote perpus REST API. All
// persistence, validation and identity live on that side; this client only
// shuttles JSON and normalizes the backend's inconsistent response shapes
// at a single decode boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fajrulhm/perpus-admin/log"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrUnauthorized marks a 401 from the remote API. Pages do not branch
	// on it (every fetch failure collapses to one generic notice); only the
	// login flow cares.
	ErrUnauthorized = errors.New("api: unauthorized")

	// ErrRemote is the generic remote failure every non-401 error wraps.
	ErrRemote = errors.New("api: remote request failed")
)

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a client for the given base URL. No timeout is set on
// the underlying http.Client; callers bound requests with their context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Any failure, transport or
// credential, comes back as an error; the caller shows the same generic
// invalid-credentials message either way.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.Wrap(err, "decode login response")
	}
	if resp.Token == "" {
		return "", errors.Wrap(ErrUnauthorized, "login returned no token")
	}
	return resp.Token, nil
}

func (c *Client) ListBooks(ctx context.Context, token string) ([]model.Book, error) {
	return fetchList[model.Book](ctx, c, token, "/buku")
}

func (c *Client) CreateBook(ctx context.Context, token string, fields model.BookFields) (model.Book, error) {
	return submitOne[model.Book](ctx, c, http.MethodPost, "/buku", token, fields)
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int64, fields model.BookFields) (model.Book, error) {
	return submitOne[model.Book](ctx, c, http.MethodPut, fmt.Sprintf("/buku/%d", id), token, fields)
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/buku/%d", id), token, nil)
	return err
}

func (c *Client) ListMembers(ctx context.Context, token string) ([]model.Member, error) {
	return fetchList[model.Member](ctx, c, token, "/member")
}

func (c *Client) CreateMember(ctx context.Context, token string, fields model.MemberFields) (model.Member, error) {
	return submitOne[model.Member](ctx, c, http.MethodPost, "/member", token, fields)
}

func (c *Client) UpdateMember(ctx context.Context, token string, id int64, fields model.MemberFields) (model.Member, error) {
	return submitOne[model.Member](ctx, c, http.MethodPut, fmt.Sprintf("/member/%d", id), token, fields)
}

func (c *Client) DeleteMember(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/member/%d", id), token, nil)
	return err
}

func (c *Client) ListLoans(ctx context.Context, token string) ([]model.Loan, error) {
	return fetchList[model.Loan](ctx, c, token, "/peminjaman")
}

func (c *Client) CreateLoan(ctx context.Context, token string, fields model.LoanFields) (model.Loan, error) {
	return submitOne[model.Loan](ctx, c, http.MethodPost, "/peminjaman", token, fields)
}

// ReturnLoan marks a loan returned. The endpoint takes no body.
func (c *Client) ReturnLoan(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/peminjaman/pengembalian/%d", id), token, struct{}{})
	return err
}

func (c *Client) ListFines(ctx context.Context, token string) ([]model.Fine, error) {
	return fetchList[model.Fine](ctx, c, token, "/denda")
}

func (c *Client) CreateFine(ctx context.Context, token string, fields model.FineFields) (model.Fine, error) {
	return submitOne[model.Fine](ctx, c, http.MethodPost, "/denda", token, fields)
}

// do issues one request and returns the raw body. Status handling is
// deliberately coarse: 401 maps to ErrUnauthorized, anything else non-2xx
// wraps ErrRemote. The UI never surfaces status detail to the user.
func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.Wrapf(ErrUnauthorized, "%s %s", method, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Warn("Remote API error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, errors.Wrapf(ErrRemote, "%s %s: status %d", method, path, resp.StatusCode)
	}
	return raw, nil
}

func fetchList[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[T](body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s response", path)
	}
	return list, nil
}

func submitOne[T any](ctx context.Context, c *Client, method, path, token string, payload interface{}) (T, error) {
	var zero T
	body, err := c.do(ctx, method, path, token, payload)
	if err != nil {
		return zero, err
	}
	item, err := decodeOne[T](body)
	if err != nil {
		return zero, errors.Wrapf(err, "decode %s response", path)
	}
	return item, nil
}
