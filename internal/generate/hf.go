package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paperqa/internal/model"
)

const defaultHFTimeout = 120 * time.Second

// HFBackend calls a HuggingFace-style inference server. The request carries
// the beam-search parameters directly, so seq2seq and causal models both
// decode with the same hyperparameters.
type HFBackend struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHFBackend builds a backend against endpoint (for example
// https://api-inference.huggingface.co). Token may be empty for servers that
// do not authenticate.
func NewHFBackend(endpoint, token string) (*HFBackend, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("inference endpoint required")
	}
	return &HFBackend{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		client:   &http.Client{Timeout: defaultHFTimeout},
	}, nil
}

type hfParameters struct {
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	NumBeams      int     `json:"num_beams"`
	LengthPenalty float64 `json:"length_penalty"`
	EarlyStopping bool    `json:"early_stopping"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// hfResult covers both task shapes; exactly one field is set per task.
type hfResult struct {
	SummaryText   string `json:"summary_text"`
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func (b *HFBackend) Generate(ctx context.Context, desc model.Descriptor, prompt string, opts Options) (string, error) {
	if b == nil || b.client == nil {
		return "", fmt.Errorf("nil hf backend")
	}
	opts = opts.withDefaults()

	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MinLength:     opts.MinLength,
			MaxLength:     opts.MaxLength,
			NumBeams:      numBeams,
			LengthPenalty: lengthPenalty,
			EarlyStopping: earlyStopping,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := b.endpoint + "/models/" + desc.UpstreamID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("inference server: %s", apiErr.Error)
		}
		return "", fmt.Errorf("inference server: status %d", resp.StatusCode)
	}

	var results []hfResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("inference server: empty result")
	}
	text := results[0].GeneratedText
	if desc.Task == model.TaskSeq2Seq && results[0].SummaryText != "" {
		text = results[0].SummaryText
	}
	if text == "" {
		return "", fmt.Errorf("inference server: no text in result")
	}
	return text, nil
}
