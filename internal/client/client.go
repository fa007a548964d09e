// FILE: internal/client/client.go
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chessmate/internal/core"
)

// APIError carries the server's error payload alongside the HTTP status.
type APIError struct {
	StatusCode int
	Response   core.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Details != "" {
		return fmt.Sprintf("%s (%s): %s", e.Response.Error, e.Response.Code, e.Response.Details)
	}
	if e.Response.Error != "" {
		return fmt.Sprintf("%s (%s)", e.Response.Error, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(u string) {
	c.BaseURL = strings.TrimRight(u, "/")
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	reqURL := c.BaseURL + path

	// Prepare body
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	// Create request
	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.Verbose {
		fmt.Printf("%s[API] %s %s%s\n", Blue, method, path, Reset)
	}

	// Execute request
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
		fmt.Printf("%s[%d %s]%s\n", statusColor(resp.StatusCode), resp.StatusCode, http.StatusText(resp.StatusCode), Reset)
		if len(respBody) > 0 {
			var pretty interface{}
			if err := json.Unmarshal(respBody, &pretty); err == nil {
				prettyJSON, _ := json.MarshalIndent(pretty, "", "  ")
				fmt.Printf("%s\n", string(prettyJSON))
			}
		}
	}

	// Parse error response
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(respBody, &apiErr.Response)
		return apiErr
	}

	// Parse success response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func statusColor(code int) string {
	if code >= 400 {
		return Red
	}
	return Green
}

// API Methods

func (c *Client) Health() (map[string]interface{}, error) {
	var resp map[string]interface{}
	err := c.doRequest("GET", "/health", nil, &resp)
	return resp, err
}

func (c *Client) CreateGame(req *core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) JoinGame(gameID, playerName string) (*core.GameResponse, error) {
	req := &core.JoinGameRequest{PlayerName: playerName}
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/join", req, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

func (c *Client) LegalMoves(gameID, playerName string) (*core.LegalMovesResponse, error) {
	var resp core.LegalMovesResponse
	path := fmt.Sprintf("/api/v1/games/%s/moves?player=%s", gameID, url.QueryEscape(playerName))
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) MakeMove(gameID string, req *core.MoveRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}
