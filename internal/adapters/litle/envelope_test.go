package litle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleOnlineAuthorization(t *testing.T) {
	g := newTestGateway(t, nil)
	req, err := g.builder.authorization(100, testCard(), Options{
		TxnID:   "11268178293",
		OrderID: "1",
		BillingAddress: &Address{
			Name:     "Jim Smith",
			Address1: "1234 My Street",
			Address2: "Apt 1",
			City:     "Ottawa",
			State:    "ON",
			Zip:      "K1C2N6",
			Country:  "CA",
			Phone:    "(555)555-5555",
		},
	})
	require.NoError(t, err)

	payload, err := g.assembleOnline(req)
	require.NoError(t, err)
	doc := string(payload)

	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `<litleOnlineRequest version="6.2" xmlns="http://www.litle.com/schema/online" merchantId="101">`)
	assert.Contains(t, doc, "<user>login</user>")
	assert.Contains(t, doc, "<password>password</password>")
	assert.Contains(t, doc, `<authorization id="11268178293" reportGroup="online" customerId="">`)
	assert.Contains(t, doc, "<orderId>1</orderId>")
	assert.Contains(t, doc, "<amount>100</amount>")
	assert.Contains(t, doc, "<orderSource>ecommerce</orderSource>")
	assert.Contains(t, doc, "<billToAddress>")
	assert.Contains(t, doc, "<name>Jim Smith</name>")
	assert.Contains(t, doc, "<addressLine1>1234 My Street</addressLine1>")
	assert.Contains(t, doc, "<type>VI</type>")
	assert.Contains(t, doc, "<number>4242424242424242</number>")
	assert.Contains(t, doc, "<expDate>0911</expDate>")
	assert.Contains(t, doc, "<cardValidationNum>123</cardValidationNum>")
	assert.NotContains(t, doc, "<shipToAddress>")
}

func TestAssembleOnlinePartialCapture(t *testing.T) {
	g := newTestGateway(t, nil)
	req, err := g.builder.capture(500, testToken(), true, Options{TxnID: "cap-1"})
	require.NoError(t, err)

	payload, err := g.assembleOnline(req)
	require.NoError(t, err)
	doc := string(payload)

	assert.Contains(t, doc, `<capture id="cap-1" reportGroup="online" customerId="" partial="true">`)
	assert.Contains(t, doc, "<litleTxnId>84568456</litleTxnId>")
	assert.Contains(t, doc, "<amount>500</amount>")
}

func TestAssembleOnlineVoidCarriesNoAmount(t *testing.T) {
	g := newTestGateway(t, nil)
	req, err := g.builder.void(testToken(), Options{TxnID: "v-1"})
	require.NoError(t, err)

	payload, err := g.assembleOnline(req)
	require.NoError(t, err)
	doc := string(payload)

	assert.Contains(t, doc, `<void id="v-1" reportGroup="online" customerId="">`)
	assert.Contains(t, doc, "<litleTxnId>84568456</litleTxnId>")
	assert.NotContains(t, doc, "<amount>")
}

func TestAssembleBatchAggregates(t *testing.T) {
	g := newTestGateway(t, nil)
	asm, err := g.assembleBatch(BatchInput{
		Authorizations: []AuthorizeInput{
			{Amount: 100, Source: testCard(), Options: Options{TxnID: "1", OrderID: "1"}},
			{Amount: 250, Source: testCard(), Options: Options{TxnID: "2", OrderID: "2"}},
		},
		Sales: []SaleInput{
			{Amount: 75, Source: testCard(), Options: Options{TxnID: "3", OrderID: "3"}},
		},
		Reversals: []ReversalInput{
			{Amount: nil, Token: testToken(), Options: Options{TxnID: "4"}},
			{Amount: Amount(50), Token: testToken(), Options: Options{TxnID: "5"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, asm.IDs)

	doc := string(asm.Payload)
	assert.Contains(t, doc, `numBatchRequests="1"`)
	assert.Contains(t, doc, `numAuths="2"`)
	assert.Contains(t, doc, `authAmount="350"`)
	assert.Contains(t, doc, `numCaptures="0"`)
	assert.Contains(t, doc, `captureAmount="0"`)
	assert.Contains(t, doc, `numSales="1"`)
	assert.Contains(t, doc, `saleAmount="75"`)
	// An absent reversal amount counts as zero in the sum
	assert.Contains(t, doc, `numAuthReversals="2"`)
	assert.Contains(t, doc, `authReversalAmount="50"`)
	assert.Contains(t, doc, `merchantId="101"`)
	assert.Contains(t, doc, "<user>login</user>")
	assert.Contains(t, doc, `<authorization id="1" reportGroup="online" customerId="">`)
	assert.Contains(t, doc, `<authReversal id="4" reportGroup="online" customerId="">`)
}

func TestAssembleBatchPropagatesBuildErrors(t *testing.T) {
	g := newTestGateway(t, nil)
	card := testCard()
	card.Brand = "carte_blanche"
	_, err := g.assembleBatch(BatchInput{
		Authorizations: []AuthorizeInput{{Amount: 100, Source: card}},
	})
	require.Error(t, err)
}

func TestAssembleRFR(t *testing.T) {
	g := newTestGateway(t, nil)
	payload, err := g.assembleRFR("123456")
	require.NoError(t, err)
	doc := string(payload)

	assert.Contains(t, doc, `numBatchRequests="0"`)
	assert.Contains(t, doc, "<RFRRequest>")
	assert.Contains(t, doc, "<litleSessionId>123456</litleSessionId>")
	assert.NotContains(t, doc, "<batchRequest")
}
