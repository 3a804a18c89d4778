package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docportal/internal/client/upload"
)

type Partner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Folder struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parentId"`
}

type UploadResult struct {
	Message      string `json:"message"`
	AttachmentID int64  `json:"attachmentId"`
	DocumentID   int64  `json:"documentId"`
	FolderID     int64  `json:"folderId"`
}

// UploadEntry is one line of the server's upload journal.
type UploadEntry struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	FolderID     int64     `json:"folderId"`
	AttachmentID int64     `json:"attachmentId"`
	DocumentID   int64     `json:"documentId"`
	Status       string    `json:"status"`
	Error        string    `json:"error"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a client for the portal at baseURL. timeout bounds each
// request; zero means no limit.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login checks credentials and returns the session token, which is empty
// when the server does not issue one.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{Status: http.StatusUnauthorized, Message: resp.Message}
	}
	return resp.Token, nil
}

func (c *Client) Upload(ctx context.Context, p *upload.Payload) (*UploadResult, error) {
	var res UploadResult
	if err := c.do(ctx, http.MethodPost, "/upload", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Contacts(ctx context.Context) ([]Partner, error) {
	var resp struct {
		Partners []Partner `json:"partners"`
	}
	if err := c.do(ctx, http.MethodGet, "/contacts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Partners, nil
}

func (c *Client) Folders(ctx context.Context) ([]Folder, error) {
	var resp struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.do(ctx, http.MethodGet, "/folders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// Uploads returns the most recent journal entries; limit <= 0 leaves the
// choice to the server.
func (c *Client) Uploads(ctx context.Context, limit int) ([]UploadEntry, error) {
	path := "/uploads"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var resp struct {
		Uploads []UploadEntry `json:"uploads"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Uploads, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError reads {error, details} or, from /login, {message}. Bodies
// that are not JSON fall back to the status text.
func decodeError(status int, data []byte) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	_ = json.Unmarshal(data, &body)

	e := &APIError{Status: status, Message: body.Error, Details: body.Details}
	if e.Message == "" {
		e.Message = body.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
