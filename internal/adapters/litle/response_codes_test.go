package litle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessCodesClosedSet(t *testing.T) {
	assert.True(t, successCodes["000"])
	assert.True(t, successCodes["111"])
	assert.True(t, successCodes["306"])
	assert.False(t, successCodes["110"])
	assert.False(t, successCodes["350"])
	assert.False(t, successCodes[""])
}

func TestAVSCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"00", "Y"},
		{"01", "X"},
		{"11", "W"},
		{"12", "A"},
		{"13", "A"},
		{"32", "U"},
		{"34", "I"},
		{"99", "U"}, // outside the table, unavailable
		{"", ""},    // absent in the response
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, avsCode(tt.raw), "raw %q", tt.raw)
	}
}

func TestResponseMessagePrefersTable(t *testing.T) {
	raw := &RawResponse{Fields: map[string]string{
		"response": "110",
		"message":  "NSF",
	}}
	assert.Equal(t, "Insufficient Funds", responseMessage(raw))
}

func TestResponseMessageFallsBackToDocument(t *testing.T) {
	raw := &RawResponse{Fields: map[string]string{
		"response": "999",
		"message":  "Unknown condition",
	}}
	assert.Equal(t, "Unknown condition", responseMessage(raw))
}

func TestClassifyApproval(t *testing.T) {
	raw := &RawResponse{
		Kind:          KindAuthorization,
		CorrelationID: "1",
		ReportGroup:   "online",
		Fields: map[string]string{
			"response":               "000",
			"message":                "Approved",
			"litle_txn_id":           "27200086782401",
			"auth_code":              "55555",
			"avs_result":             "32",
			"card_validation_result": "M",
		},
	}

	resp := classify(raw)
	assert.True(t, resp.Success)
	assert.Equal(t, "Approved", resp.Message)
	assert.Equal(t, "27200086782401;55555", resp.Authorization)
	assert.Equal(t, "U", resp.AVSResult)
	assert.Equal(t, "M", resp.CVVResult)
	assert.Equal(t, "000", resp.ResponseCode)
	assert.Equal(t, "1", resp.CorrelationID)
}

func TestClassifyDepletedAuthorizationIsSuccess(t *testing.T) {
	raw := &RawResponse{
		Kind: KindCapture,
		Fields: map[string]string{
			"response":     "111",
			"litle_txn_id": "84568456",
		},
	}

	resp := classify(raw)
	assert.True(t, resp.Success)
	assert.Equal(t, "Authorization amount has already been depleted", resp.Message)
	assert.Equal(t, "84568456;", resp.Authorization)
}

func TestClassifyDecline(t *testing.T) {
	raw := &RawResponse{
		Kind: KindSale,
		Fields: map[string]string{
			"response":     "350",
			"litle_txn_id": "99990000",
		},
	}

	resp := classify(raw)
	require.False(t, resp.Success)
	assert.Equal(t, "Generic Decline", resp.Message)
	assert.Empty(t, resp.Authorization)
}

func TestCorrelationFault(t *testing.T) {
	resp := correlationFault("7")
	assert.False(t, resp.Success)
	assert.Equal(t, "7", resp.CorrelationID)
	assert.NotEmpty(t, resp.Message)
}
