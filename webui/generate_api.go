// Package webui provides the HTTP surface of the relay: the generation API,
// the static client page, and request logging.
//
// This file contains the GenerateAPI handler that validates an inbound
// prompt, calls the image provider, and normalizes every outcome into a
// bilingual JSON envelope.
package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aiphoto_backend/imagegen"
	"aiphoto_backend/logging"

	"go.uber.org/zap"
)

// MaxGenerateBodyBytes caps the generation request body at 2 MB.
const MaxGenerateBodyBytes = 2 << 20

// Error codes returned in the failure envelope.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeOpenAIError = "OPENAI_ERROR"
	CodeNoImage     = "NO_IMAGE"
	CodeServerError = "SERVER_ERROR"
)

// GenerateRequest is the inbound body of POST /api/generate. Prompt is
// decoded loosely so that non-string values can be rejected explicitly
// instead of failing as a generic decode error.
type GenerateRequest struct {
	Prompt any `json:"prompt"`
}

// ErrorBody carries both language renderings of a failure so the client can
// present the appropriate one without a second round trip. Lang is "bn" when
// the submitted prompt contained Bangla characters, otherwise omitted.
type ErrorBody struct {
	Code      string `json:"code"`
	MessageEN string `json:"message_en"`
	MessageBN string `json:"message_bn"`
	Lang      string `json:"lang,omitempty"`
}

// Envelope is the uniform response shape for both success and failure.
type Envelope struct {
	OK       bool       `json:"ok"`
	FileName string     `json:"fileName,omitempty"`
	B64      string     `json:"b64,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
}

// GenerateAPI handles POST /api/generate. It is stateless: every request's
// variation tag, prompt and result are local to that request, so any number
// of requests may be in flight concurrently.
type GenerateAPI struct {
	provider imagegen.Provider
	logger   *logging.Logger
}

// NewGenerateAPI creates the generation handler. The logger may be nil.
func NewGenerateAPI(provider imagegen.Provider, logger *logging.Logger) *GenerateAPI {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GenerateAPI{
		provider: provider,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes on the given ServeMux.
func (api *GenerateAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", api.HandleGenerate)
}

// HandleGenerate handles POST /api/generate requests.
//
// Flow: validate the prompt, tag it for variation, call the provider once,
// and map the outcome onto the envelope:
//
//	BAD_REQUEST  400  missing/empty/non-string prompt
//	OPENAI_ERROR 500  upstream non-2xx or transport failure
//	NO_IMAGE     502  upstream success but no image data
//	SERVER_ERROR 500  any other unexpected failure (including panics)
func (api *GenerateAPI) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	isBangla := false

	defer func() {
		if rec := recover(); rec != nil {
			api.logger.Error("panic in generate handler", zap.Any("panic", rec))
			api.writeError(w, http.StatusInternalServerError, &ErrorBody{
				Code:      CodeServerError,
				MessageEN: fmt.Sprintf("Unexpected server error: %v", rec),
				MessageBN: fmt.Sprintf("অপ্রত্যাশিত সার্ভার ত্রুটি: %v", rec),
				Lang:      langFlag(isBangla),
			})
		}
	}()

	if r.Method != http.MethodPost {
		api.writeError(w, http.StatusMethodNotAllowed, &ErrorBody{
			Code:      CodeBadRequest,
			MessageEN: "Method not allowed. Use POST.",
			MessageBN: "এই পদ্ধতি অনুমোদিত নয়। POST ব্যবহার করুন।",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxGenerateBodyBytes)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeBadRequest(w)
		return
	}

	prompt, ok := req.Prompt.(string)
	if !ok {
		api.writeBadRequest(w)
		return
	}

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		api.writeBadRequest(w)
		return
	}

	isBangla = imagegen.ContainsBangla(prompt)
	tag := imagegen.NewVariationTag()
	tagged := imagegen.TagPrompt(prompt, tag)

	api.logger.Debug("generating image",
		zap.String("variation_tag", tag),
		zap.Bool("bangla", isBangla),
		zap.Int("prompt_chars", len(trimmed)),
	)

	b64, err := api.provider.Generate(r.Context(), tagged)
	if err != nil {
		api.writeGenerateError(w, err, isBangla, tag)
		return
	}

	api.writeJSON(w, http.StatusOK, Envelope{
		OK:       true,
		FileName: imagegen.ImageFileName(tag, time.Now()),
		B64:      b64,
	})
}

// writeGenerateError maps provider failures onto the error envelope.
func (api *GenerateAPI) writeGenerateError(w http.ResponseWriter, err error, isBangla bool, tag string) {
	lang := langFlag(isBangla)

	if errors.Is(err, imagegen.ErrNoImage) {
		api.logger.Warn("upstream returned no image data", zap.String("variation_tag", tag))
		api.writeError(w, http.StatusBadGateway, &ErrorBody{
			Code:      CodeNoImage,
			MessageEN: "The image service returned no image data.",
			MessageBN: "ইমেজ সার্ভিস থেকে কোনো ছবির ডেটা পাওয়া যায়নি।",
			Lang:      lang,
		})
		return
	}

	var upstreamErr *imagegen.UpstreamError
	if errors.As(err, &upstreamErr) {
		api.logger.Error("upstream call failed",
			zap.String("variation_tag", tag),
			zap.Int("upstream_status", upstreamErr.StatusCode),
			zap.String("reason", upstreamErr.Reason),
		)
		api.writeError(w, http.StatusInternalServerError, &ErrorBody{
			Code:      CodeOpenAIError,
			MessageEN: fmt.Sprintf("Image generation failed: %s", upstreamErr.Reason),
			MessageBN: fmt.Sprintf("ছবি তৈরি ব্যর্থ হয়েছে: %s", upstreamErr.Reason),
			Lang:      lang,
		})
		return
	}

	api.logger.Error("unexpected generation failure",
		zap.String("variation_tag", tag),
		zap.Error(err),
	)
	api.writeError(w, http.StatusInternalServerError, &ErrorBody{
		Code:      CodeServerError,
		MessageEN: fmt.Sprintf("Unexpected server error: %s", err.Error()),
		MessageBN: fmt.Sprintf("অপ্রত্যাশিত সার্ভার ত্রুটি: %s", err.Error()),
		Lang:      lang,
	})
}

// writeBadRequest writes the standard invalid-prompt failure.
func (api *GenerateAPI) writeBadRequest(w http.ResponseWriter) {
	api.writeError(w, http.StatusBadRequest, &ErrorBody{
		Code:      CodeBadRequest,
		MessageEN: "Please enter a prompt.",
		MessageBN: "অনুগ্রহ করে একটি প্রম্পট লিখুন।",
	})
}

// writeError writes a failure envelope with the given status code.
func (api *GenerateAPI) writeError(w http.ResponseWriter, status int, body *ErrorBody) {
	api.writeJSON(w, status, Envelope{OK: false, Error: body})
}

// writeJSON writes a JSON response with the given status code.
func (api *GenerateAPI) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already written; nothing further we can do.
		api.logger.Error("failed to encode response", zap.Error(err))
	}
}

// langFlag returns "bn" when the prompt was Bangla, empty otherwise so the
// field is omitted from the envelope.
func langFlag(isBangla bool) string {
	if isBangla {
		return "bn"
	}
	return ""
}
