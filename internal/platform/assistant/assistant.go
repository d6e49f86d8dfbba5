// Package assistant calls an external text-generation service for clinical
// summaries and symptom triage. The service is best-effort: any failure
// yields a fixed fallback string so consultations never block on it.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// FallbackSummary is returned when a clinical summary cannot be generated.
	FallbackSummary = "No se pudo generar el resumen clínico en este momento."
	// FallbackTriage is returned when symptom analysis fails.
	FallbackTriage = "Error al analizar síntomas."
)

const (
	summaryPrompt = "Eres un asistente pediátrico experto. Resume la siguiente nota clínica en 3 puntos clave: " +
		"1. Diagnóstico/Hallazgos principales. 2. Tratamiento sugerido. 3. Recomendaciones para los padres. Nota: "
	triagePrompt = "Basado en estos síntomas pediátricos, sugiere posibles diagnósticos diferenciales y " +
		"banderas rojas (urgencias) que el doctor debe considerar. Síntomas: "
)

// Summarizer produces assistant text for consultations.
type Summarizer interface {
	Summarize(ctx context.Context, notes string) string
	Triage(ctx context.Context, symptoms string) string
}

// Client talks to the generation endpoint. A zero-value base URL disables
// the client; every call then returns the fallback immediately.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (c *Client) Summarize(ctx context.Context, notes string) string {
	return c.generate(ctx, summaryPrompt+notes, 0.7, FallbackSummary)
}

func (c *Client) Triage(ctx context.Context, symptoms string) string {
	return c.generate(ctx, triagePrompt+symptoms, 0.3, FallbackTriage)
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float64, fallback string) string {
	if c.baseURL == "" {
		return fallback
	}

	payload, err := json.Marshal(generateRequest{Prompt: prompt, Temperature: temperature})
	if err != nil {
		c.logger.Error().Err(err).Msg("assistant: marshal request")
		return fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error().Err(err).Msg("assistant: create request")
		return fallback
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("assistant: request failed")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.ReadAll(io.LimitReader(resp.Body, 1024)) // drain
		c.logger.Error().Int("status", resp.StatusCode).Msg("assistant: non-2xx response")
		return fallback
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error().Err(err).Msg("assistant: decode response")
		return fallback
	}
	if out.Text == "" {
		return fallback
	}
	return out.Text
}

var _ Summarizer = (*Client)(nil)

// Disabled returns a client that always produces fallbacks. Used when no
// assistant endpoint is configured.
func Disabled(logger zerolog.Logger) *Client {
	return NewClient("", "", time.Second, logger)
}
