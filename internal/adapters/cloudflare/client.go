package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot/internal/core/domain"
)

// DefaultBaseURL is the Cloudflare v4 API root
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// DefaultTimeout applies when New is given a zero timeout
const DefaultTimeout = 30 * time.Second

var (
	// ErrNetwork wraps connection and I/O failures reaching the API
	ErrNetwork = errors.New("failed to request API")

	// ErrDecode wraps responses that are not the expected JSON envelope
	ErrDecode = errors.New("failed to parse response json")

	// ErrInvalidAccountID is returned for ids that cannot form the endpoint path
	ErrInvalidAccountID = errors.New("bad account id")
)

// AuthError is returned when the API rejects a token verification
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unable to verify the auth pair (HTTP %d): %s", e.Status, strings.TrimSpace(e.Body))
}

// Client talks to the Cloudflare Images v1 upload endpoint
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a client. An empty baseURL uses DefaultBaseURL. Retries are
// left at resty's default of zero.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetLogger(logger.Sugar()).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Endpoint returns {base}/accounts/{account_id}/images/v1
func (c *Client) Endpoint(accountID string) (string, error) {
	if accountID == "" || strings.ContainsAny(accountID, "/?#% ") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountID, accountID)
	}

	endpoint, err := url.JoinPath(c.baseURL, "accounts", accountID, "images", "v1")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAccountID, err)
	}
	return endpoint, nil
}

// Upload sends the image as multipart/form-data with the parts file,
// requireSignedURLs and metadata. A JSON body with success=false is
// returned as a normal response whatever the HTTP status.
func (c *Client) Upload(ctx context.Context, creds domain.Credentials, req domain.UploadRequest) (*domain.Response, error) {
	endpoint, err := c.Endpoint(creds.AccountID)
	if err != nil {
		return nil, err
	}

	meta, err := req.Metadata.JSON()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("uploading", zap.String("url", endpoint), zap.String("filename", req.Filename))

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(creds.Token).
		SetMultipartField("file", req.Filename, "image/png", bytes.NewReader(req.Bytes)).
		SetMultipartFormData(map[string]string{
			"requireSignedURLs": strconv.FormatBool(req.RequireSignedURLs),
			"metadata":          meta,
		}).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	c.logger.Debug("response", zap.Int("status", resp.StatusCode()), zap.ByteString("body", resp.Body()))

	var out domain.Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w (HTTP %d): %w", ErrDecode, resp.StatusCode(), err)
	}
	return &out, nil
}

// VerifyToken issues a bodiless GET against the upload endpoint. Only the
// status class matters: 2xx is success, anything else is an *AuthError
// carrying the raw response text.
func (c *Client) VerifyToken(ctx context.Context, creds domain.Credentials) error {
	endpoint, err := c.Endpoint(creds.AccountID)
	if err != nil {
		return err
	}

	c.logger.Debug("verifying token", zap.String("url", endpoint))

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(creds.Token).
		Get(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	c.logger.Debug("response", zap.Int("status", resp.StatusCode()), zap.String("body", resp.String()))

	if !resp.IsSuccess() {
		return &AuthError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
