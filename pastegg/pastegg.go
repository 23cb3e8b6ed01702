// Package pastegg is a minimal client for the paste.gg v1 API, used to
// publish oversized relayed messages as a single link.
package pastegg

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultEndpoint is the public paste.gg API.
const DefaultEndpoint = "https://api.paste.gg/v1"

// publicURL is where created pastes can be viewed.
const publicURL = "https://paste.gg/"

// A File is one named text file within a paste.
type File struct {
	Name    string
	Content string
}

// A Client submits pastes to a paste.gg compatible service.
type Client struct {
	endpoint string
	key      string // optional API key
	http     *http.Client
}

// New returns a Client for the given API endpoint. An empty endpoint
// selects the public paste.gg service. The key may be empty for
// anonymous pastes.
func New(endpoint, key string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		key:      key,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type pasteContent struct {
	Format string `json:"format"`
	Value  string `json:"value"`
}

type pasteFile struct {
	Name    string       `json:"name"`
	Content pasteContent `json:"content"`
}

type pasteRequest struct {
	Name  string      `json:"name"`
	Files []pasteFile `json:"files"`
}

type pasteResponse struct {
	Status string `json:"status"`
	Result struct {
		ID string `json:"id"`
	} `json:"result"`
}

// Submit creates a paste and returns its public URL.
func (c *Client) Submit(title string, files []File) (string, error) {
	req := pasteRequest{Name: title}
	for _, f := range files {
		req.Files = append(req.Files, pasteFile{
			Name:    f.Name,
			Content: pasteContent{Format: "text", Value: f.Content},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "could not encode paste")
	}

	httpReq, err := http.NewRequest("POST", c.endpoint+"/pastes", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "could not build paste request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		httpReq.Header.Set("Authorization", "Key "+c.key)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "paste service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("paste service returned %s", resp.Status)
	}

	var result pasteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "could not decode paste response")
	}

	if result.Status != "success" || result.Result.ID == "" {
		return "", errors.New("paste service returned no paste")
	}

	return publicURL + result.Result.ID, nil
}
