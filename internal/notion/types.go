package notion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Page is a page object as returned by the search endpoint.
type Page struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Parent         Parent              `json:"parent"`
	Properties     map[string]Property `json:"properties"`
}

// Parent identifies the container of a page.
type Parent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
}

// Property is a page property. Only the variants the sync reads are decoded.
type Property struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	Name string `json:"name"`
}

// Text returns the concatenated plain text of a title or rich_text property.
func (p Page) Text(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}
	var items []RichText
	switch prop.Type {
	case "title":
		items = prop.Title
	case "rich_text":
		items = prop.RichText
	}
	return joinPlainText(items)
}

// Select returns the option name of a select or status property along with
// the property type.
func (p Page) Select(name string) (value, kind string) {
	prop, ok := p.Properties[name]
	if !ok {
		return "", ""
	}
	var opt *SelectOption
	switch prop.Type {
	case "select":
		opt = prop.Select
	case "status":
		opt = prop.Status
	default:
		return "", prop.Type
	}
	if opt == nil {
		return "", prop.Type
	}
	return opt.Name, prop.Type
}

// Block is a child block. Its payload lives under a key equal to its type,
// so decoding is done by hand.
type Block struct {
	ID       string
	Type     string
	RichText []RichText
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var head struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	b.ID = head.ID
	b.Type = head.Type
	b.RichText = nil

	payload, ok := raw[head.Type]
	if !ok || len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	var body struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		// Some block payloads are not objects; they carry no text.
		return nil
	}
	b.RichText = body.RichText
	return nil
}

// PlainText concatenates the block's rich text runs.
func (b Block) PlainText() string {
	return joinPlainText(b.RichText)
}

func joinPlainText(items []RichText) string {
	var sb strings.Builder
	for _, t := range items {
		sb.WriteString(t.PlainText)
	}
	return sb.String()
}

// listResponse is the envelope shared by the paginated list endpoints.
type listResponse[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// APIError is the error object returned by the API on non-2xx responses.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == 401
}
