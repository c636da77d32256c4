package litle

import (
	"strings"

	pkgerrors "github.com/kevin07696/litle-gateway/pkg/errors"
)

// tokenSeparator joins the processor transaction id and the auth code
// in the textual token form
const tokenSeparator = ";"

// AuthorizationToken is the opaque credential referencing a previously
// processed transaction. Capture, credit, void, and auth reversal all
// address their target through it.
type AuthorizationToken struct {
	LitleTxnID string
	AuthCode   string
}

func (AuthorizationToken) isPaymentSource() {}

// String renders the token in its wire form "{litleTxnId};{authCode}".
// The separator is always present even when the auth code is empty.
func (t AuthorizationToken) String() string {
	return t.LitleTxnID + tokenSeparator + t.AuthCode
}

// ParseAuthorizationToken decodes the textual token form. A missing
// separator means the value was never a token and is rejected before
// anything reaches the processor.
func ParseAuthorizationToken(s string) (AuthorizationToken, error) {
	txnID, authCode, found := strings.Cut(s, tokenSeparator)
	if !found {
		return AuthorizationToken{}, pkgerrors.NewValidationError("authorization", "malformed token: missing separator")
	}
	return AuthorizationToken{LitleTxnID: txnID, AuthCode: authCode}, nil
}
