package litle

// TransactionKind identifies one of the six request shapes the Litle
// wire protocol accepts. The value doubles as the XML element name.
type TransactionKind string

const (
	KindAuthorization TransactionKind = "authorization"
	KindCapture       TransactionKind = "capture"
	KindCredit        TransactionKind = "credit"
	KindSale          TransactionKind = "sale"
	KindVoid          TransactionKind = "void"
	KindAuthReversal  TransactionKind = "authReversal"
)

// OrderSource is the channel descriptor Litle requires on card-present
// transaction kinds
type OrderSource string

const (
	OrderSourceEcommerce        OrderSource = "ecommerce"
	OrderSourceInstallment      OrderSource = "installment"
	OrderSourceMailOrder        OrderSource = "mailorder"
	OrderSourceRecurring        OrderSource = "recurring"
	OrderSourceRetail           OrderSource = "retail"
	OrderSourceTelephone        OrderSource = "telephone"
	OrderSource3DSAuthenticated OrderSource = "3dsAuthenticated"
	OrderSource3DSAttempted     OrderSource = "3dsAttempted"
)

// PaymentSource is either a raw card or a token referencing a prior
// transaction. Card and AuthorizationToken are the only implementations.
type PaymentSource interface {
	isPaymentSource()
}

// Card holds raw card credentials for standalone transactions
type Card struct {
	Number            string
	Month             int
	Year              int
	VerificationValue string
	Brand             string // "visa", "master", "american_express", ...
}

func (Card) isPaymentSource() {}

// CardData is the wire-ready form of a card: brand already mapped to the
// processor's two-letter code and the expiration rendered as MMYY
type CardData struct {
	Type              string
	Number            string
	ExpDate           string
	CardValidationNum string
}

// Address is a billing or shipping address. Fields longer than the
// processor's caps are truncated at build time, never rejected.
type Address struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
	Phone    string
}

// Options carries the per-transaction settings shared by every kind.
// Zero values fall back to the processor defaults: reportGroup "online"
// and the ecommerce order source.
type Options struct {
	// TxnID is the caller-chosen correlation id. When empty an id is
	// generated; either way the id is fixed at build time and reused
	// to match the eventual response.
	TxnID           string
	OrderID         string
	CustomerID      string
	ReportGroup     string
	OrderSource     OrderSource
	BillingAddress  *Address
	ShippingAddress *Address
	// Partial permits capturing less than the authorized amount.
	// Only meaningful on capture.
	Partial bool
}

func (o Options) withDefaults() Options {
	if o.ReportGroup == "" {
		o.ReportGroup = "online"
	}
	if o.OrderSource == "" {
		o.OrderSource = OrderSourceEcommerce
	}
	return o
}

// TransactionRequest is one wire-ready payment operation. Instances are
// produced by the request builder and consumed by the envelope
// assembler; the ID is never regenerated after construction.
type TransactionRequest struct {
	Kind        TransactionKind
	ID          string
	ReportGroup string
	CustomerID  string
	Partial     bool
	OrderID     string
	Amount      *int64
	OrderSource OrderSource
	BillTo      *Address
	ShipTo      *Address
	Card        *CardData
	LitleTxnID  string
}

// RawResponse is the flattened form of one response element: every leaf
// text node keyed by its lower_snake_case tag name, plus the identifying
// attributes read off the <kind>Response element itself.
type RawResponse struct {
	Kind          TransactionKind
	CorrelationID string
	ReportGroup   string
	BatchID       string
	Fields        map[string]string
}

// GatewayResponse is the caller-facing result of one transaction
type GatewayResponse struct {
	Success       bool
	Message       string
	Kind          TransactionKind
	CorrelationID string
	ReportGroup   string
	BatchID       string
	ResponseCode  string
	AVSResult     string
	CVVResult     string
	// Authorization is the prior-transaction token for follow-on
	// operations. Only set on success.
	Authorization string
	Fields        map[string]string
}

// AuthorizeInput is one authorization inside a batch submission
type AuthorizeInput struct {
	Amount  int64
	Source  PaymentSource
	Options Options
}

// SaleInput is one sale inside a batch submission
type SaleInput struct {
	Amount  int64
	Source  PaymentSource
	Options Options
}

// CaptureInput is one capture inside a batch submission
type CaptureInput struct {
	Amount  int64
	Token   AuthorizationToken
	Partial bool
	Options Options
}

// CreditInput is one credit inside a batch submission. A Card source
// produces a standalone credit, a token a follow-on credit.
type CreditInput struct {
	Amount  int64
	Source  PaymentSource
	Options Options
}

// ReversalInput is one auth reversal inside a batch submission. A nil
// Amount reverses the full authorized amount.
type ReversalInput struct {
	Amount  *int64
	Token   AuthorizationToken
	Options Options
}

// BatchInput groups the transactions for one batch envelope. The wire
// protocol cannot batch true voids, only auth reversals, so there is no
// void list here; voids go through the online path.
type BatchInput struct {
	Authorizations []AuthorizeInput
	Captures       []CaptureInput
	Credits        []CreditInput
	Sales          []SaleInput
	Reversals      []ReversalInput
}

func (in BatchInput) empty() bool {
	return len(in.Authorizations) == 0 &&
		len(in.Captures) == 0 &&
		len(in.Credits) == 0 &&
		len(in.Sales) == 0 &&
		len(in.Reversals) == 0
}

func (in BatchInput) size() int {
	return len(in.Authorizations) + len(in.Captures) + len(in.Credits) +
		len(in.Sales) + len(in.Reversals)
}
