package license

import (
	"bytes"
	"encoding/json"
	"strings"
)

// outcome category of a verification call
type Status string

const (
	StatusValid           Status = "valid"
	StatusWrongProduct    Status = "wrong_product"
	StatusInvalid         Status = "invalid"
	StatusConnectionError Status = "connection_error"
)

const (
	MessageValid        = "License key validated!"
	MessageWrongProduct = "This key is valid, but for the wrong product."
	MessageInvalid      = "Invalid license key."
)

// classified result of one verification call. never persisted.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (r Result) Valid() bool {
	return r.Status == StatusValid
}

type Config struct {
	APIKey    string
	ProductID string
	StoreID   string

	// overrides the Lemon Squeezy endpoint, used by tests
	BaseURL string
}

// identifier the service may send as a JSON number or string
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*f = flexibleID(n.String())
	return nil
}

// subset of the /v1/licenses/validate response
type validateResponse struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error"`
	Instance *struct {
		ProductID flexibleID `json:"product_id"`
	} `json:"instance"`
	Meta *struct {
		StoreID     flexibleID `json:"store_id"`
		ProductID   flexibleID `json:"product_id"`
		ProductName string     `json:"product_name"`
	} `json:"meta"`
}

// product id from the instance object, falling back to meta
func (r validateResponse) productID() string {
	if r.Instance != nil && r.Instance.ProductID != "" {
		return string(r.Instance.ProductID)
	}
	if r.Meta != nil {
		return string(r.Meta.ProductID)
	}
	return ""
}

func (r validateResponse) storeID() string {
	if r.Meta != nil {
		return string(r.Meta.StoreID)
	}
	return ""
}
