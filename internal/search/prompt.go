package search

import (
	"encoding/json"
	"fmt"
)

func buildSearchPrompt(records []Record, q Query) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	prompt := `
You are a dish search engine for a restaurant catalog.

Your task:
- Pick the dishes from CATALOG that best match the QUERY (and the image, if one is attached).
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.
- Return at most ` + fmt.Sprintf("%d", q.Limit) + ` matches, best first.
- restaurant_id and dish_name MUST be copied verbatim from CATALOG.

If nothing matches, return this exact JSON:
{
  "status": "no_match",
  "matches": []
}

Required JSON schema:
{
  "status": "success",
  "matches": [
    {
      "restaurant_id": "string",
      "dish_name": "string"
    }
  ]
}

QUERY:
` + q.Text

	if q.Preferences != "" {
		prompt += `

USER PREFERENCES:
` + q.Preferences
	}

	prompt += `

CATALOG:
` + string(data)

	return prompt, nil
}
