package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

var (
	ErrUploadFailed  = errors.New("image upload failed")
	ErrUploadTimeout = errors.New("image upload timed out")
)

const uploadTimeout = 10 * time.Second

// Client uploads product images to the external image host. The upload
// is awaited before the product record is persisted; a failed or timed
// out upload aborts product creation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: uploadTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload streams one multipart file to the host and returns the hosted
// image URL.
func (c *Client) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open upload: %v", ErrUploadFailed, err)
	}
	defer src.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", file.Filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("folder", folder); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || uploadCtx.Err() != nil {
			return "", ErrUploadTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: empty secure_url", ErrUploadFailed)
	}
	return result.SecureURL, nil
}
