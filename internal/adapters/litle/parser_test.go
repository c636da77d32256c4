package litle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const successfulAuthorizeResponse = `<litleOnlineResponse version="1.0"
    xmlns="http://www.litle.com/schema/online" response="0" message="Valid Format">
    <authorizationResponse id="12399107165113" reportGroup="online" customerId="">
        <litleTxnId>27200086782401</litleTxnId>
        <orderId>5</orderId>
        <response>000</response>
        <responseTime>2009-04-16T19:38:37</responseTime>
        <postDate>2009-04-16</postDate>
        <message>Approved</message>
        <authCode>55555</authCode>
        <fraudResult>
            <avsResult>32</avsResult>
            <cardValidationResult>M</cardValidationResult>
        </fraudResult>
    </authorizationResponse>
</litleOnlineResponse>`

const failedOnlineResponse = `<litleOnlineResponse version="1.0" xmlns="http://www.litle.com/schema/online" response="1" message="System Error - Call Litle &amp; Co.">
</litleOnlineResponse>`

const successfulBatchResponse = `<litleResponse version="1.1"
      xmlns="http://www.litle.com/schema"
      id="123" response="0" message="Valid Format"
      litleSessionId="987654321">
  <batchResponse id="01234567" litleBatchId="4455667788" merchantId="100">
    <authorizationResponse id="2" reportGroup="RG27">
      <litleTxnId>84568456</litleTxnId>
      <orderId>2</orderId>
      <response>000</response>
      <responseTime>2005-09-01T10:24:31</responseTime>
      <message>Approved</message>
      <authCode>123456</authCode>
      <fraudResult>
        <avsResult>00</avsResult>
      </fraudResult>
    </authorizationResponse>
    <authorizationResponse id="1" reportGroup="RG12">
      <litleTxnId>84568457</litleTxnId>
      <orderId>1</orderId>
      <response>000</response>
      <responseTime>2005-09-01T10:24:31</responseTime>
      <message>Approved</message>
      <authCode>123456</authCode>
      <fraudResult>
        <avsResult>00</avsResult>
        <authenticationResult>2</authenticationResult>
      </fraudResult>
    </authorizationResponse>
  </batchResponse>
</litleResponse>`

const failedBatchResponse = `<litleResponse version="3.0" xmlns="http://www.litle.com/schema" response="1" message="Error validating xml data against the schema on line 18 the value is not a member of the enumeration." litleSessionId="27512406201">
</litleResponse>`

func TestParseOnlineSuccess(t *testing.T) {
	raw, err := parseOnline([]byte(successfulAuthorizeResponse))
	require.NoError(t, err)

	assert.Equal(t, KindAuthorization, raw.Kind)
	assert.Equal(t, "12399107165113", raw.CorrelationID)
	assert.Equal(t, "online", raw.ReportGroup)
	assert.Empty(t, raw.BatchID)

	// Leaf nodes flatten under snake_case keys; the fraudResult
	// container contributes no key of its own
	assert.Equal(t, "27200086782401", raw.Fields["litle_txn_id"])
	assert.Equal(t, "000", raw.Fields["response"])
	assert.Equal(t, "55555", raw.Fields["auth_code"])
	assert.Equal(t, "32", raw.Fields["avs_result"])
	assert.Equal(t, "M", raw.Fields["card_validation_result"])
	assert.Equal(t, "2009-04-16T19:38:37", raw.Fields["response_time"])
	assert.NotContains(t, raw.Fields, "fraud_result")
}

func TestParseOnlineProtocolFault(t *testing.T) {
	raw, err := parseOnline([]byte(failedOnlineResponse))
	require.NoError(t, err)

	assert.Empty(t, string(raw.Kind))
	assert.Equal(t, "System Error - Call Litle & Co.", raw.Fields["message"])
	assert.NotContains(t, raw.Fields, "response")
}

func TestParseOnlineMalformed(t *testing.T) {
	_, err := parseOnline([]byte("not xml at all <"))
	require.Error(t, err)
}

func TestParseOnlineUnexpectedRoot(t *testing.T) {
	_, err := parseOnline([]byte(`<wrongRoot response="0"/>`))
	require.Error(t, err)
}

func TestParseBatchSuccess(t *testing.T) {
	responses, fault, err := parseBatch([]byte(successfulBatchResponse))
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Len(t, responses, 2)

	// Document order is preserved; every child inherits the batch id
	assert.Equal(t, "2", responses[0].CorrelationID)
	assert.Equal(t, "RG27", responses[0].ReportGroup)
	assert.Equal(t, "4455667788", responses[0].BatchID)
	assert.Equal(t, "84568456", responses[0].Fields["litle_txn_id"])

	assert.Equal(t, "1", responses[1].CorrelationID)
	assert.Equal(t, "RG12", responses[1].ReportGroup)
	assert.Equal(t, "4455667788", responses[1].BatchID)
	assert.Equal(t, "84568457", responses[1].Fields["litle_txn_id"])
	assert.Equal(t, "2", responses[1].Fields["authentication_result"])

	for _, r := range responses {
		assert.Equal(t, KindAuthorization, r.Kind)
	}
}

func TestParseBatchProtocolFault(t *testing.T) {
	responses, fault, err := parseBatch([]byte(failedBatchResponse))
	require.NoError(t, err)
	assert.Nil(t, responses)
	require.NotNil(t, fault)
	assert.Equal(t, "Error validating xml data against the schema on line 18 the value is not a member of the enumeration.", fault.Fields["message"])
}

func TestResponseKind(t *testing.T) {
	tests := []struct {
		tag  string
		kind TransactionKind
		ok   bool
	}{
		{"authorizationResponse", KindAuthorization, true},
		{"captureResponse", KindCapture, true},
		{"creditResponse", KindCredit, true},
		{"saleResponse", KindSale, true},
		{"voidResponse", KindVoid, true},
		{"authReversalResponse", KindAuthReversal, true},
		{"Response", "", false},
		{"batchResponse", TransactionKind("batch"), true},
		{"authentication", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			kind, ok := responseKind(tt.tag)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestUnderscore(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"litleTxnId", "litle_txn_id"},
		{"avsResult", "avs_result"},
		{"cardValidationResult", "card_validation_result"},
		{"message", "message"},
		{"orderId", "order_id"},
		{"AVSResult", "avs_result"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, underscore(tt.in), tt.in)
	}
}
