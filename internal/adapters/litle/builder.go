package litle

import (
	pkgerrors "github.com/kevin07696/litle-gateway/pkg/errors"
)

// requestBuilder turns caller inputs into wire-ready TransactionRequests.
// All validation that can fail a transaction before submission happens
// here: unknown card brands, missing prior-transaction ids, negative
// amounts.
type requestBuilder struct {
	ids *idGenerator
}

func newRequestBuilder() *requestBuilder {
	return &requestBuilder{ids: newIDGenerator()}
}

func (b *requestBuilder) authorization(amount int64, source PaymentSource, opts Options) (*TransactionRequest, error) {
	return b.orderRequest(KindAuthorization, amount, source, opts)
}

func (b *requestBuilder) sale(amount int64, source PaymentSource, opts Options) (*TransactionRequest, error) {
	return b.orderRequest(KindSale, amount, source, opts)
}

// orderRequest builds the shared authorize/sale shape: order fields,
// amount, optional addresses, and a card-or-token payment source
func (b *requestBuilder) orderRequest(kind TransactionKind, amount int64, source PaymentSource, opts Options) (*TransactionRequest, error) {
	opts = opts.withDefaults()
	if amount < 0 {
		return nil, pkgerrors.NewValidationError("amount", "must not be negative")
	}
	req := &TransactionRequest{
		Kind:        kind,
		ID:          b.ids.next(opts.TxnID),
		ReportGroup: opts.ReportGroup,
		CustomerID:  opts.CustomerID,
		OrderID:     opts.OrderID,
		Amount:      &amount,
		OrderSource: opts.OrderSource,
		BillTo:      truncatedAddress(opts.BillingAddress),
		ShipTo:      truncatedAddress(opts.ShippingAddress),
	}
	if err := b.applySource(req, source); err != nil {
		return nil, err
	}
	return req, nil
}

func (b *requestBuilder) capture(amount int64, token AuthorizationToken, partial bool, opts Options) (*TransactionRequest, error) {
	opts = opts.withDefaults()
	if amount < 0 {
		return nil, pkgerrors.NewValidationError("amount", "must not be negative")
	}
	if token.LitleTxnID == "" {
		return nil, pkgerrors.NewValidationError("authorization", "capture requires a prior transaction id")
	}
	return &TransactionRequest{
		Kind:        KindCapture,
		ID:          b.ids.next(opts.TxnID),
		ReportGroup: opts.ReportGroup,
		CustomerID:  opts.CustomerID,
		Partial:     partial,
		Amount:      &amount,
		LitleTxnID:  token.LitleTxnID,
	}, nil
}

// credit builds either a standalone credit (card source, same shape as
// sale minus addresses) or a follow-on credit (token source, amount only)
func (b *requestBuilder) credit(amount int64, source PaymentSource, opts Options) (*TransactionRequest, error) {
	opts = opts.withDefaults()
	if amount < 0 {
		return nil, pkgerrors.NewValidationError("amount", "must not be negative")
	}
	req := &TransactionRequest{
		Kind:        KindCredit,
		ID:          b.ids.next(opts.TxnID),
		ReportGroup: opts.ReportGroup,
		CustomerID:  opts.CustomerID,
		Amount:      &amount,
	}
	switch src := source.(type) {
	case Card:
		card, err := cardData(src)
		if err != nil {
			return nil, err
		}
		req.Card = card
		req.OrderID = opts.OrderID
		req.OrderSource = opts.OrderSource
	case AuthorizationToken:
		if src.LitleTxnID == "" {
			return nil, pkgerrors.NewValidationError("authorization", "follow-on credit requires a prior transaction id")
		}
		req.LitleTxnID = src.LitleTxnID
	default:
		return nil, pkgerrors.NewValidationError("paymentSource", "credit requires a card or a prior authorization token")
	}
	return req, nil
}

func (b *requestBuilder) void(token AuthorizationToken, opts Options) (*TransactionRequest, error) {
	opts = opts.withDefaults()
	if token.LitleTxnID == "" {
		return nil, pkgerrors.NewValidationError("authorization", "void requires a prior transaction id")
	}
	return &TransactionRequest{
		Kind:        KindVoid,
		ID:          b.ids.next(opts.TxnID),
		ReportGroup: opts.ReportGroup,
		CustomerID:  opts.CustomerID,
		LitleTxnID:  token.LitleTxnID,
	}, nil
}

// authReversal reverses the full authorization when amount is nil
func (b *requestBuilder) authReversal(amount *int64, token AuthorizationToken, opts Options) (*TransactionRequest, error) {
	opts = opts.withDefaults()
	if amount != nil && *amount < 0 {
		return nil, pkgerrors.NewValidationError("amount", "must not be negative")
	}
	if token.LitleTxnID == "" {
		return nil, pkgerrors.NewValidationError("authorization", "auth reversal requires a prior transaction id")
	}
	return &TransactionRequest{
		Kind:        KindAuthReversal,
		ID:          b.ids.next(opts.TxnID),
		ReportGroup: opts.ReportGroup,
		CustomerID:  opts.CustomerID,
		Amount:      amount,
		LitleTxnID:  token.LitleTxnID,
	}, nil
}

func (b *requestBuilder) applySource(req *TransactionRequest, source PaymentSource) error {
	switch src := source.(type) {
	case Card:
		card, err := cardData(src)
		if err != nil {
			return err
		}
		req.Card = card
	case AuthorizationToken:
		if src.LitleTxnID == "" {
			return pkgerrors.NewValidationError("authorization", "token source requires a prior transaction id")
		}
		req.LitleTxnID = src.LitleTxnID
	default:
		return pkgerrors.NewValidationError("paymentSource", "a card or prior authorization token is required")
	}
	return nil
}
