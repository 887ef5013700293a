package entity

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ID is a server-assigned identifier. Services may send it as a JSON number
// or a JSON string; it is kept verbatim and only ever echoed back in paths.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("id must be a number or a string")
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
