package litle

import (
	"fmt"

	pkgerrors "github.com/kevin07696/litle-gateway/pkg/errors"
)

// Processor field caps. Values beyond a cap are truncated, not rejected.
const (
	maxNameLen        = 100
	maxAddressLineLen = 35
	maxCityLen        = 35
	maxStateLen       = 30
	maxZipLen         = 20
	maxCountryLen     = 20
	maxPhoneLen       = 20
)

// cardTypeCodes is the closed brand table. Brands outside it fail fast
// rather than submitting a blank type code.
var cardTypeCodes = map[string]string{
	"visa":             "VI",
	"master":           "MC",
	"american_express": "AX",
	"discover":         "DI",
	"diners_club":      "DC",
	"jcb":              "JC",
}

func cardTypeCode(brand string) (string, error) {
	code, ok := cardTypeCodes[brand]
	if !ok {
		return "", pkgerrors.NewValidationError("card.brand", fmt.Sprintf("unsupported card brand %q", brand))
	}
	return code, nil
}

// expDate renders the expiration as the MMYY form the schema expects
func expDate(month, year int) string {
	return fmt.Sprintf("%02d%02d", month, year%100)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// truncatedAddress applies the per-field caps, leaving the caller's
// Address untouched
func truncatedAddress(a *Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Name:     truncate(a.Name, maxNameLen),
		Address1: truncate(a.Address1, maxAddressLineLen),
		Address2: truncate(a.Address2, maxAddressLineLen),
		City:     truncate(a.City, maxCityLen),
		State:    truncate(a.State, maxStateLen),
		Zip:      truncate(a.Zip, maxZipLen),
		Country:  truncate(a.Country, maxCountryLen),
		Phone:    truncate(a.Phone, maxPhoneLen),
	}
}

// cardData maps a raw card to its wire form, failing on unknown brands
func cardData(c Card) (*CardData, error) {
	code, err := cardTypeCode(c.Brand)
	if err != nil {
		return nil, err
	}
	return &CardData{
		Type:              code,
		Number:            c.Number,
		ExpDate:           expDate(c.Month, c.Year),
		CardValidationNum: c.VerificationValue,
	}, nil
}
