// Package api - API types for the calculator
// These types define the contract for /calculate and /batch.
// The API is stateless and deterministic for a given input.
package api

import (
	"time"

	"payoff/core/explanation"
	"payoff/core/form"
	"payoff/core/output"
)

// RequestOptions are the per-request overrides of the server defaults
type RequestOptions struct {
	Mode     string `json:"mode,omitempty"`
	Banding  string `json:"banding,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Currency string `json:"currency,omitempty"`

	// RequireFinite rejects results whose unit cost is NaN or infinite
	RequireFinite bool `json:"require_finite,omitempty"`
}

// CalculateRequest is the input to POST /calculate.
// Numeric fields are strings, exactly as typed into the form.
type CalculateRequest struct {
	RequestOptions
	form.RawInput
}

// BatchItem is one named entry of a batch
type BatchItem struct {
	Name string `json:"name"`
	form.RawInput
}

// BatchRequest is the input to POST /batch
type BatchRequest struct {
	RequestOptions
	Items []BatchItem `json:"items"`
}

// CalculateResponse is the output of POST /calculate
type CalculateResponse struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`

	Result      output.ResultDTO         `json:"result"`
	Explanation *explanation.Explanation `json:"explanation,omitempty"`
	Metadata    *ResponseMetadata        `json:"metadata,omitempty"`
}

// BatchResponse is the output of POST /batch
type BatchResponse struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`

	Results  []output.ResultDTO `json:"results"`
	Summary  *output.Summary    `json:"summary"`
	Metadata *ResponseMetadata  `json:"metadata,omitempty"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	InputHash     string `json:"input_hash"`
	EngineVersion string `json:"engine_version"`
	Mode          string `json:"mode"`
	Banding       string `json:"banding"`
	Locale        string `json:"locale"`
	Currency      string `json:"currency"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorResponse is written for every failed request
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Status    string      `json:"status"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail provides error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Fields maps invalid input fields to localized messages
	Fields map[string]string `json:"fields,omitempty"`
}

// OptionsResponse enumerates the accepted selector values
type OptionsResponse struct {
	PeriodUnits    []string `json:"period_units"`
	FrequencyUnits []string `json:"frequency_units"`
	Modes          []string `json:"modes"`
	Bandings       []string `json:"bandings"`
	Locales        []string `json:"locales"`
	Currencies     []string `json:"currencies"`
	Formats        []string `json:"formats"`
	Defaults       Defaults `json:"defaults"`
}

// Defaults are the values the server applies when a request omits them
type Defaults struct {
	Mode          string `json:"mode"`
	Banding       string `json:"banding"`
	Locale        string `json:"locale"`
	Currency      string `json:"currency"`
	PeriodUnit    string `json:"period_unit"`
	FrequencyUnit string `json:"frequency_unit"`
}
