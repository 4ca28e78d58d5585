// Package imagegen provides prompt preparation utilities and the upstream
// image-generation client.
//
// openai_provider.go implements the OpenAIProvider that generates images
// through the OpenAI images API, requesting base64 output rather than URLs.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"aiphoto_backend/core"

	"github.com/sashabaranov/go-openai"
)

// Provider is the narrow interface the HTTP layer depends on, so tests can
// substitute a fake implementation without network access.
//
// Generate creates one image for the prompt and returns its base64 payload.
// Failures are reported as *UpstreamError (non-2xx or transport failure) or
// ErrNoImage (success without image data); anything else is unexpected.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIProvider implements Provider against the OpenAI images endpoint.
//
// Thread Safety: OpenAIProvider is safe for concurrent use. The underlying
// client handles connection pooling, and the provider itself holds no
// per-request state.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIProvider creates a provider from the loaded configuration.
//
// Returns an error if the config is nil or the API key is empty. Model, size
// and endpoint fall back to the standard defaults when unset.
func NewOpenAIProvider(cfg *core.Config) (*OpenAIProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("imagegen: config cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("imagegen: API key is required for image generation")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.ImageAPIURL != "" {
		clientConfig.BaseURL = cfg.ImageAPIURL
	}
	clientConfig.HTTPClient = core.GetHTTPClient(cfg, cfg.AITimeout)

	model := cfg.ImageModel
	if model == "" {
		model = "gpt-image-1"
	}
	size := cfg.ImageSize
	if size == "" {
		size = "1024x1024"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		size:   size,
	}, nil
}

// Generate creates exactly one image for the prompt and returns the base64
// payload from the first result.
//
// Error mapping:
//   - non-2xx upstream status or transport failure: *UpstreamError
//   - 2xx with no image data at Data[0].B64JSON: ErrNoImage
//   - anything else (e.g. malformed success body): returned unchanged
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          p.model,
		Size:           p.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	response, err := p.client.CreateImage(ctx, req)
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return "", ErrNoImage
	}

	return response.Data[0].B64JSON, nil
}

// Model returns the configured image model identifier.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Size returns the configured output size string.
func (p *OpenAIProvider) Size() string {
	return p.size
}

// classifyUpstreamError converts go-openai errors into *UpstreamError.
// The reason prefers the upstream error body's message field; when the body
// was not parseable it falls back to the HTTP status text, and transport
// failures carry the underlying network error.
func classifyUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		reason := apiErr.Message
		if reason == "" {
			reason = http.StatusText(apiErr.HTTPStatusCode)
		}
		return &UpstreamError{Reason: reason, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		reason := http.StatusText(reqErr.HTTPStatusCode)
		if reason == "" {
			reason = reqErr.Error()
		}
		return &UpstreamError{Reason: reason, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &UpstreamError{Reason: urlErr.Err.Error(), Err: err}
	}

	// Not an upstream protocol failure (e.g. malformed success-body JSON);
	// let the HTTP layer report it as an unexpected error.
	return err
}

// Ensure OpenAIProvider implements Provider at compile time.
var _ Provider = (*OpenAIProvider)(nil)
