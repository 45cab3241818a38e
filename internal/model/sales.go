package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sale statuses used by the sales summary.
const (
	SaleSucceeded = "موفق"
	SaleCanceled  = "لغو شده"
)

type Sale struct {
	Name  string  `json:"name,omitempty"`
	Sales float64 `json:"sales,omitempty"`
}

type SaleRecord struct {
	ID     Label   `json:"id,omitempty"`
	Name   string  `json:"name,omitempty"`
	Date   string  `json:"date,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Profit float64 `json:"profit,omitempty"`
	Status string  `json:"status,omitempty"`
}

type YearlySales struct {
	Year    Label   `json:"year,omitempty"`
	Revenue float64 `json:"revenue,omitempty"`
	Profit  float64 `json:"profit,omitempty"`
}

// Label is a display key that may be written as a JSON string or number.
type Label string

func (l *Label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	*l = Label(n.String())
	return nil
}
