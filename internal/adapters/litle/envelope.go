package litle

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Protocol versions and namespaces, per the Litle XML reference
const (
	onlineVersion = "6.2"
	batchVersion  = "6.2"
	onlineSchema  = "http://www.litle.com/schema/online"
	batchSchema   = "http://www.litle.com/schema"
)

type authenticationElement struct {
	User     string `xml:"user"`
	Password string `xml:"password"`
}

// onlineEnvelope wraps exactly one transaction for the synchronous path
type onlineEnvelope struct {
	XMLName        xml.Name              `xml:"litleOnlineRequest"`
	Version        string                `xml:"version,attr"`
	XMLNS          string                `xml:"xmlns,attr"`
	MerchantID     string                `xml:"merchantId,attr"`
	Authentication authenticationElement `xml:"authentication"`
	Transaction    *TransactionRequest
}

// batchElement carries the grouped transactions plus the derived
// per-kind counts and amount sums. The aggregates are computed during
// assembly and never set independently.
type batchElement struct {
	XMLName            xml.Name `xml:"batchRequest"`
	ID                 string   `xml:"id,attr"`
	NumAuths           int      `xml:"numAuths,attr"`
	AuthAmount         int64    `xml:"authAmount,attr"`
	NumCaptures        int      `xml:"numCaptures,attr"`
	CaptureAmount      int64    `xml:"captureAmount,attr"`
	NumCredits         int      `xml:"numCredits,attr"`
	CreditAmount       int64    `xml:"creditAmount,attr"`
	NumSales           int      `xml:"numSales,attr"`
	SaleAmount         int64    `xml:"saleAmount,attr"`
	NumAuthReversals   int      `xml:"numAuthReversals,attr"`
	AuthReversalAmount int64    `xml:"authReversalAmount,attr"`
	MerchantID         string   `xml:"merchantId,attr"`
	Transactions       []*TransactionRequest
}

type rfrElement struct {
	XMLName   xml.Name `xml:"RFRRequest"`
	SessionID string   `xml:"litleSessionId"`
}

// batchEnvelope is the asynchronous submission root. Exactly one of
// Batch or RFR is set.
type batchEnvelope struct {
	XMLName          xml.Name              `xml:"litleRequest"`
	Version          string                `xml:"version,attr"`
	XMLNS            string                `xml:"xmlns,attr"`
	ID               string                `xml:"id,attr"`
	NumBatchRequests int                   `xml:"numBatchRequests,attr"`
	Authentication   authenticationElement `xml:"authentication"`
	Batch            *batchElement
	RFR              *rfrElement
}

type addressElement struct {
	Name         string `xml:"name,omitempty"`
	AddressLine1 string `xml:"addressLine1,omitempty"`
	AddressLine2 string `xml:"addressLine2,omitempty"`
	City         string `xml:"city,omitempty"`
	State        string `xml:"state,omitempty"`
	Zip          string `xml:"zip,omitempty"`
	Country      string `xml:"country,omitempty"`
	Phone        string `xml:"phone,omitempty"`
}

type cardElement struct {
	Type              string `xml:"type"`
	Number            string `xml:"number"`
	ExpDate           string `xml:"expDate"`
	CardValidationNum string `xml:"cardValidationNum,omitempty"`
}

// MarshalXML renders the transaction under its kind-specific element
// name with the id/reportGroup/customerId attributes, then walks the
// closed set of kinds to emit children in schema order.
func (t *TransactionRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{
		Name: xml.Name{Local: string(t.Kind)},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: t.ID},
			{Name: xml.Name{Local: "reportGroup"}, Value: t.ReportGroup},
			{Name: xml.Name{Local: "customerId"}, Value: t.CustomerID},
		},
	}
	if t.Partial {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "partial"}, Value: "true"})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := t.encodeChildren(e); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (t *TransactionRequest) encodeChildren(e *xml.Encoder) error {
	switch t.Kind {
	case KindAuthorization, KindSale:
		if err := encodeLeaf(e, "orderId", t.OrderID); err != nil {
			return err
		}
		if err := encodeAmount(e, t.Amount); err != nil {
			return err
		}
		if err := encodeLeaf(e, "orderSource", string(t.OrderSource)); err != nil {
			return err
		}
		if err := encodeAddress(e, "billToAddress", t.BillTo); err != nil {
			return err
		}
		if err := encodeAddress(e, "shipToAddress", t.ShipTo); err != nil {
			return err
		}
		if t.Card != nil {
			return encodeCard(e, t.Card)
		}
		return encodeLeaf(e, "litleTxnId", t.LitleTxnID)

	case KindCredit:
		if t.Card != nil {
			if err := encodeLeaf(e, "orderId", t.OrderID); err != nil {
				return err
			}
			if err := encodeAmount(e, t.Amount); err != nil {
				return err
			}
			if err := encodeLeaf(e, "orderSource", string(t.OrderSource)); err != nil {
				return err
			}
			return encodeCard(e, t.Card)
		}
		if err := encodeLeaf(e, "litleTxnId", t.LitleTxnID); err != nil {
			return err
		}
		return encodeAmount(e, t.Amount)

	case KindCapture:
		if err := encodeLeaf(e, "litleTxnId", t.LitleTxnID); err != nil {
			return err
		}
		return encodeAmount(e, t.Amount)

	case KindVoid:
		return encodeLeaf(e, "litleTxnId", t.LitleTxnID)

	case KindAuthReversal:
		if err := encodeLeaf(e, "litleTxnId", t.LitleTxnID); err != nil {
			return err
		}
		if t.Amount != nil {
			return encodeAmount(e, t.Amount)
		}
		return nil

	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
}

func encodeLeaf(e *xml.Encoder, name, value string) error {
	return e.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: name}})
}

func encodeAmount(e *xml.Encoder, amount *int64) error {
	if amount == nil {
		return nil
	}
	return encodeLeaf(e, "amount", strconv.FormatInt(*amount, 10))
}

func encodeAddress(e *xml.Encoder, name string, a *Address) error {
	if a == nil {
		return nil
	}
	el := addressElement{
		Name:         a.Name,
		AddressLine1: a.Address1,
		AddressLine2: a.Address2,
		City:         a.City,
		State:        a.State,
		Zip:          a.Zip,
		Country:      a.Country,
		Phone:        a.Phone,
	}
	return e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: name}})
}

func encodeCard(e *xml.Encoder, c *CardData) error {
	el := cardElement{
		Type:              c.Type,
		Number:            c.Number,
		ExpDate:           c.ExpDate,
		CardValidationNum: c.CardValidationNum,
	}
	return e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "card"}})
}

// batchAssembly is the call-local result of assembling one batch: the
// rendered payload plus the correlation-id sequence in submission
// order, carried forward to the correlator. Keeping the sequence here
// rather than on the gateway avoids cross-call contamination.
type batchAssembly struct {
	Payload []byte
	IDs     []string
}

func (g *Gateway) assembleOnline(req *TransactionRequest) ([]byte, error) {
	env := &onlineEnvelope{
		Version:        onlineVersion,
		XMLNS:          onlineSchema,
		MerchantID:     g.cfg.MerchantID,
		Authentication: g.authentication(),
		Transaction:    req,
	}
	return marshalDocument(env)
}

func (g *Gateway) assembleBatch(in BatchInput) (*batchAssembly, error) {
	batch := &batchElement{
		ID:         g.builder.ids.submissionID(),
		MerchantID: g.cfg.MerchantID,
	}
	ids := make([]string, 0, in.size())

	add := func(req *TransactionRequest) {
		batch.Transactions = append(batch.Transactions, req)
		ids = append(ids, req.ID)
	}

	for _, a := range in.Authorizations {
		req, err := g.builder.authorization(a.Amount, a.Source, a.Options)
		if err != nil {
			return nil, err
		}
		batch.NumAuths++
		batch.AuthAmount += a.Amount
		add(req)
	}
	for _, c := range in.Captures {
		req, err := g.builder.capture(c.Amount, c.Token, c.Partial, c.Options)
		if err != nil {
			return nil, err
		}
		batch.NumCaptures++
		batch.CaptureAmount += c.Amount
		add(req)
	}
	for _, c := range in.Credits {
		req, err := g.builder.credit(c.Amount, c.Source, c.Options)
		if err != nil {
			return nil, err
		}
		batch.NumCredits++
		batch.CreditAmount += c.Amount
		add(req)
	}
	for _, s := range in.Sales {
		req, err := g.builder.sale(s.Amount, s.Source, s.Options)
		if err != nil {
			return nil, err
		}
		batch.NumSales++
		batch.SaleAmount += s.Amount
		add(req)
	}
	for _, r := range in.Reversals {
		req, err := g.builder.authReversal(r.Amount, r.Token, r.Options)
		if err != nil {
			return nil, err
		}
		batch.NumAuthReversals++
		if r.Amount != nil {
			batch.AuthReversalAmount += *r.Amount
		}
		add(req)
	}

	env := &batchEnvelope{
		Version:          batchVersion,
		XMLNS:            batchSchema,
		ID:               g.builder.ids.submissionID(),
		NumBatchRequests: 1,
		Authentication:   g.authentication(),
		Batch:            batch,
	}
	payload, err := marshalDocument(env)
	if err != nil {
		return nil, err
	}
	return &batchAssembly{Payload: payload, IDs: ids}, nil
}

// assembleRFR builds the request that retrieves a prior batch's results
// by its processor session id
func (g *Gateway) assembleRFR(sessionID string) ([]byte, error) {
	env := &batchEnvelope{
		Version:          batchVersion,
		XMLNS:            batchSchema,
		ID:               g.builder.ids.submissionID(),
		NumBatchRequests: 0,
		Authentication:   g.authentication(),
		RFR:              &rfrElement{SessionID: sessionID},
	}
	return marshalDocument(env)
}

func (g *Gateway) authentication() authenticationElement {
	return authenticationElement{User: g.cfg.Username, Password: g.cfg.Password}
}

func marshalDocument(doc interface{}) ([]byte, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
