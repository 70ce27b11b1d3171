package address

import "strings"

// Address is the shipping address kept on a user profile and copied onto orders.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) Trimmed() Address {
	return Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Country: strings.TrimSpace(a.Country),
	}
}

// IsComplete reports whether every field is filled in.
func (a Address) IsComplete() bool {
	t := a.Trimmed()
	return t.Street != "" && t.City != "" && t.State != "" && t.ZipCode != "" && t.Country != ""
}
