// Package rapidapi holds the response format of WordsAPI on RapidAPI.
// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Response struct {
	Word          string        `json:"word"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = s
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	Antonyms     []string `json:"antonyms,omitempty"`
	Examples     []string `json:"examples"`
}

// BestResult returns the first result with the given part of speech, or the
// first result when none matches or partOfSpeech is empty.
func (r Response) BestResult(partOfSpeech string) (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	partOfSpeech = strings.TrimSpace(partOfSpeech)
	if partOfSpeech != "" {
		for _, result := range r.Results {
			if strings.EqualFold(result.PartOfSpeech, partOfSpeech) {
				return result, true
			}
		}
	}
	return r.Results[0], true
}
