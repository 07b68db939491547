package views

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Detail is the backend's failure message. The backend sends either a plain
// string or, for request validation errors, a list of {loc, msg, type} objects.
type Detail string

func (d *Detail) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = Detail(s)
		return nil
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(b, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			*d = Detail(strings.Join(msgs, "; "))
			return nil
		}
	}

	// anything else is shown as sent
	*d = Detail(b)
	return nil
}

func (d Detail) String() string {
	return string(d)
}
