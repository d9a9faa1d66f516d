package campaigns

import "encoding/json"

// Metadata mirrors the JSON blob the admin UI stores per campaign. All
// fields are optional; zero values fall back to the widget defaults.
type Metadata struct {
	CheckboxStyle CheckboxStyle `json:"checkboxStyle"`
	FontSettings  FontSettings  `json:"fontSettings"`
}

type CheckboxStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	ActiveColor     string `json:"activeColor"`
	Size            int    `json:"size"`
}

type FontSettings struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Weight string `json:"weight"`
}

// ParseMetadata decodes the raw metadata column. A missing or malformed
// payload yields nil and no error surfaces to the caller: a broken style
// blob must never drop the campaign itself.
func ParseMetadata(raw string) *Metadata {
	if raw == "" {
		return nil
	}
	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return &m
}
