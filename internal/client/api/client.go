// Package api is a typed HTTP client for the checkers server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"checkers/internal/client/display"
	"checkers/internal/core"
)

// Error is a non-2xx answer from the server
type Error struct {
	Status   int
	Response core.ErrorResponse
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d %s", e.Status, e.Response.Error)
	if e.Response.Code != "" {
		msg += " (" + e.Response.Code + ")"
	}
	if e.Response.Details != "" {
		msg += ": " + e.Response.Details
	}
	return msg
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Games   int    `json:"games"`
	Storage string `json:"storage"`
}

type Client struct {
	BaseURL    string
	Token      string // seat token of the current game
	HTTPClient *http.Client
	Trace      io.Writer // request log, nil for none
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-poll waits are capped server side at 25s
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) SetToken(token string) {
	c.Token = token
}

func (c *Client) tracef(format string, args ...any) {
	if c.Trace != nil {
		fmt.Fprintf(c.Trace, format, args...)
	}
}

func (c *Client) doRequest(method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		if c.Verbose {
			c.tracef("%s[API] %s %s %s%s\n", display.Blue, method, path, jsonData, display.Reset)
		}
	} else if c.Verbose {
		c.tracef("%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if c.Verbose {
		statusColor := display.Green
		if resp.StatusCode >= 400 {
			statusColor = display.Red
		}
		c.tracef("%s[%d %s]%s %s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset, respBody)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Response); err != nil {
			apiErr.Response.Error = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("response parse error: %w", err)
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

// CreateGame starts a game and adopts its seat token
func (c *Client) CreateGame(req core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.doRequest("POST", "/api/v1/games", req, &resp); err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

// WaitGame long-polls until the game's version differs from version
func (c *Client) WaitGame(gameID string, version int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&version=%d", gameID, version)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) SelectCell(gameID string, row, col int) (*core.ActionResponse, error) {
	req := core.SelectRequest{Row: &row, Col: &col}
	var resp core.ActionResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/select", req, &resp)
	return &resp, err
}

func (c *Client) EndTurn(gameID string) (*core.ActionResponse, error) {
	var resp core.ActionResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/end-turn", nil, &resp)
	return &resp, err
}

func (c *Client) ResetGame(gameID string) (*core.ActionResponse, error) {
	var resp core.ActionResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/reset", nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}
