// Package client is the outbound HTTP adapter for the check-in flow. It
// implements the checkin Searcher and Submitter against the public API and
// resolves sessions from typed short codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"qrcheckin/internal/domain/checkin"
)

// MsgRequestFailed is the fallback shown when a response carries no readable
// server message.
const MsgRequestFailed = "요청 실패"

// ErrSessionNotFound is returned by SessionByCode for an unknown code.
var ErrSessionNotFound = errors.New("세션을 찾을 수 없습니다.")

// maxBodyBytes caps response reads against a misbehaving server.
const maxBodyBytes = 1 << 20

// SessionInfo is the public session shape returned for a short code.
type SessionInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SessionDate string `json:"sessionDate"`
	Status      string `json:"status"`
	ShortCode   string `json:"shortCode"`
}

// Client talks to the check-in API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL. A nil httpClient gets a
// 10 second timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Search implements checkin.Searcher. A blank query returns an empty list
// without issuing a request.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]checkin.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return []checkin.Candidate{}, nil
	}
	u := c.baseURL + "/api/participants/search?q=" + url.QueryEscape(query) +
		"&limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(serverMessage(body))
	}
	var out struct {
		Items []checkin.Candidate `json:"items"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.New(MsgRequestFailed)
	}
	if out.Items == nil {
		out.Items = []checkin.Candidate{}
	}
	return out.Items, nil
}

// Submit implements checkin.Submitter. Any response with a readable body
// becomes an Outcome; only transport-level failures return an error.
func (c *Client) Submit(ctx context.Context, sub checkin.Submission) (checkin.Outcome, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return checkin.Outcome{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/checkin", bytes.NewReader(payload))
	if err != nil {
		return checkin.Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return checkin.Outcome{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return checkin.Outcome{}, err
	}
	var out checkin.Outcome
	if err := json.Unmarshal(body, &out); err != nil || out.Message == "" {
		return checkin.Outcome{OK: false, Message: serverMessage(body)}, nil
	}
	return out, nil
}

// SessionByCode resolves the public session info for a typed short code.
func (c *Client) SessionByCode(ctx context.Context, code string) (SessionInfo, error) {
	u := fmt.Sprintf("%s/api/sessions/code/%s", c.baseURL, url.PathEscape(strings.ToUpper(strings.TrimSpace(code))))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SessionInfo{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return SessionInfo{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return SessionInfo{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return SessionInfo{}, ErrSessionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return SessionInfo{}, errors.New(serverMessage(body))
	}
	var info SessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return SessionInfo{}, errors.New(MsgRequestFailed)
	}
	return info, nil
}

// serverMessage probes a response body for the API's message field, falling
// back to the generic failure text.
func serverMessage(body []byte) string {
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Message != "" {
		return probe.Message
	}
	return MsgRequestFailed
}
