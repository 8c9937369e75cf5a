package searchapi

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

var resultFields = [...]string{"id", "title", "snippet"}

// decodeResults validates the success payload and extracts its results.
// The payload must be an object whose "results" is an array of objects
// with string id, title and snippet.
func decodeResults(body []byte) ([]domain.SearchResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: not JSON", domain.ErrInvalidResponse)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: payload is not an object", domain.ErrInvalidResponse)
	}

	results := root.Get("results")
	if !results.IsArray() {
		return nil, fmt.Errorf("%w: results is not an array", domain.ErrInvalidResponse)
	}

	items := results.Array()
	out := make([]domain.SearchResult, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: results[%d] is not an object", domain.ErrInvalidResponse, i)
		}
		var fields [len(resultFields)]gjson.Result
		for j, name := range resultFields {
			fields[j] = item.Get(name)
			if fields[j].Type != gjson.String {
				return nil, fmt.Errorf("%w: results[%d].%s is not a string", domain.ErrInvalidResponse, i, name)
			}
		}
		out = append(out, domain.SearchResult{
			ID:      fields[0].String(),
			Title:   fields[1].String(),
			Snippet: fields[2].String(),
		})
	}
	return out, nil
}

// errorMessage extracts a string "message" from an error payload.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	msg := gjson.GetBytes(body, "message")
	if msg.Type != gjson.String {
		return ""
	}
	return msg.String()
}
