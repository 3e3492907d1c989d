package search

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type GeminiEngine struct {
	apiKey string
	model  string
}

func NewGeminiEngine() *GeminiEngine {
	return &GeminiEngine{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  os.Getenv("GEMINI_MODEL"),
	}
}

// Search sends the flat catalog plus the query (and the staged image,
// when present) to Gemini and parses its JSON verdict. A well-formed
// non-success status comes back as data; transport and API failures
// come back as errors.
func (g *GeminiEngine) Search(ctx context.Context, records []Record, q Query) (*Result, error) {
	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return nil, errors.New("missing GEMINI_MODEL")
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}

	prompt, err := buildSearchPrompt(records, q)
	if err != nil {
		return nil, err
	}

	parts := []map[string]any{
		{"text": prompt},
	}

	if q.ImagePath != "" {
		image, err := os.ReadFile(q.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("read staged image: %w", err)
		}
		parts = append(parts, map[string]any{
			"inline_data": map[string]string{
				"mime_type": imageMIMEType(q.ImagePath),
				"data":      base64.StdEncoding.EncodeToString(image),
			},
		})
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model,
		g.apiKey,
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": 2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error: %s", string(raw))
	}

	// Gemini response shape
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	output := result.Candidates[0].Content.Parts[0].Text

	// Models occasionally wrap the JSON in prose or fences.
	jsonText := extractJSON(output)
	if jsonText == "" {
		return nil, errors.New("gemini returned non-json output")
	}

	var verdict Result
	if err := json.Unmarshal([]byte(jsonText), &verdict); err != nil {
		return nil, err
	}

	return &verdict, nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
