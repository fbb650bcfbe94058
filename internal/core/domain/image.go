package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/kamal-hamza/shot/pkg/metadata"
)

// Credentials is the account id + bearer token pair sent with every request
type Credentials struct {
	AccountID string
	Token     string
}

// UploadRequest describes a single multipart upload
type UploadRequest struct {
	Filename          string
	Bytes             []byte
	RequireSignedURLs bool              // defaults to false
	Metadata          metadata.Metadata // nil is sent as "{}"
}

// Response is the envelope every Cloudflare API call returns
type Response struct {
	Success    bool       `json:"success"`
	Result     *Image     `json:"result"`
	ResultInfo *string    `json:"result_info"`
	Messages   []string   `json:"messages"`
	Errors     []APIError `json:"errors"`
}

// APIError is an application level error reported by the API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("(code %d) %s", e.Code, e.Message)
}

// Image is an uploaded Cloudflare Images record
type Image struct {
	ID                string            `json:"id"`
	Filename          string            `json:"filename"`
	RequireSignedURLs bool              `json:"requireSignedURLs"`
	Uploaded          time.Time         `json:"uploaded"` // RFC 3339
	Variants          []VariantURL      `json:"variants"`
	Meta              map[string]string `json:"meta,omitempty"`
}

// VariantURL is the absolute URL of a provider-generated rendition
type VariantURL string

// UnmarshalJSON rejects relative or malformed URLs
func (v *VariantURL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid variant url %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("variant url %q is not absolute", raw)
	}
	*v = VariantURL(raw)
	return nil
}

func (v VariantURL) String() string {
	return string(v)
}

// Name returns the variant name, the last path segment of the URL
// (e.g. "public" for https://imagedelivery.net/<hash>/<id>/public)
func (v VariantURL) Name() string {
	u, err := url.Parse(string(v))
	if err != nil || u.Path == "" || u.Path == "/" {
		return "UNKNOWN"
	}
	return path.Base(u.Path)
}

// Markdown renders the variant as a Markdown image
func (v VariantURL) Markdown(alt string) string {
	return fmt.Sprintf("![%s](%s)", alt, v)
}

// HTML renders the variant as an <img> tag
func (v VariantURL) HTML(alt string) string {
	return fmt.Sprintf(`<img alt="%s" src="%s" />`, alt, v)
}

// Format renders the variant in one of "url", "markdown" or "html"
func (v VariantURL) Format(format, alt string) string {
	switch format {
	case "markdown":
		return v.Markdown(alt)
	case "html":
		return v.HTML(alt)
	default:
		return v.String()
	}
}
