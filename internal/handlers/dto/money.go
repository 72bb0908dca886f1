package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Amount aceita valores como string ("50,00", "50.00") ou número (50.5)
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("valor inválido: %s", data)
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// Ptr retorna nil para valores vazios
func (a *Amount) Ptr() *string {
	if a == nil {
		return nil
	}
	s := string(*a)
	return &s
}
