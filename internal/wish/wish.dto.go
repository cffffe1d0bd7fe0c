package wish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type CreateWishRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Normalize trims both fields and reports whether the request is usable.
func (r CreateWishRequest) Normalize() (CreateWishRequest, bool) {
	out := CreateWishRequest{
		Name:    strings.TrimSpace(r.Name),
		Message: strings.TrimSpace(r.Message),
	}
	return out, out.Name != "" && out.Message != ""
}

type DeleteWishRequest struct {
	ID ID `json:"id"`
}

// ID accepts both `"12"` and `12` on the wire. Responses always carry it as
// a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type ListWishesResponse struct {
	Success  bool    `json:"success"`
	Messages []*Wish `json:"messages"`
}

type CreateWishResponse struct {
	Success bool  `json:"success"`
	Message *Wish `json:"message"`
}
