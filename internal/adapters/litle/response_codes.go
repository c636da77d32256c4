package litle

// successCodes is the closed set of response codes treated as approval.
// 111 (authorization already depleted) and 306 (authorization expired,
// no reversal needed) count as success for their transaction kinds.
var successCodes = map[string]bool{
	"000": true,
	"111": true,
	"306": true,
}

// responseMessages maps every documented processor response code to its
// human-readable message
var responseMessages = map[string]string{
	"000": "Approved",
	"100": "Processing Network Unavailable",
	"101": "Issuer Unavailable",
	"102": "Re-submit Transaction",
	"110": "Insufficient Funds",
	"111": "Authorization amount has already been depleted",
	"120": "Call Issuer",
	"121": "Call AMEX",
	"122": "Call Diners Club",
	"123": "Call Discover",
	"124": "Call JBS",
	"125": "Call Visa/MasterCard",
	"126": "Call Issuer - Update Cardholder Data",
	"127": "Exceeds Approval Amount Limit",
	"130": "Call Indicated Number",
	"140": "Update Cardholder Data",
	"191": "The merchant is not registered in the update program",
	"301": "Invalid Account Number",
	"302": "Account Number Does Not Match Payment Type",
	"303": "Pick Up Card",
	"304": "Lost/Stolen Card",
	"305": "Expired Card",
	"306": "Authorization has expired; no need to reverse",
	"307": "Restricted Card",
	"308": "Restricted Card - Chargeback",
	"310": "Invalid track data",
	"311": "Deposit is already referenced by a chargeback",
	"320": "Invalid Expiration Date",
	"321": "Invalid Merchant",
	"322": "Invalid Transaction",
	"323": "No such issuer",
	"324": "Invalid Pin",
	"325": "Transaction not allowed at terminal",
	"326": "Exceeds number of PIN entries",
	"327": "Cardholder transaction not permitted",
	"328": "Cardholder requested that recurring or installment payment be stopped",
	"330": "Invalid Payment Type",
	"335": "This method of payment does not support authorization reversals",
	"340": "Invalid Amount",
	"346": "Invalid billing descriptor prefix",
	"349": "Do Not Honor",
	"350": "Generic Decline",
	"351": "Decline - Request Positive ID",
	"352": "Decline CVV2/CID Fail",
	"353": "Merchant requested decline due to AVS result",
	"354": "3-D Secure transaction not supported by merchant",
}

// avsCodes maps raw processor AVS codes to the canonical single-letter
// alphabet
var avsCodes = map[string]string{
	"00": "Y",
	"01": "X",
	"02": "D",
	"10": "Z",
	"11": "W",
	"12": "A",
	"13": "A",
	"14": "P",
	"20": "C",
	"30": "S",
	"31": "R",
	"32": "U",
	"33": "R",
	"34": "I",
	"40": "U",
}

// avsUnavailable is the sentinel for AVS codes outside the table:
// address information unavailable, never an error
const avsUnavailable = "U"

func avsCode(raw string) string {
	if raw == "" {
		return ""
	}
	if mapped, ok := avsCodes[raw]; ok {
		return mapped
	}
	return avsUnavailable
}

// responseMessage prefers the fixed table over the processor-supplied
// message so callers see a stable text per code
func responseMessage(raw *RawResponse) string {
	if msg, ok := responseMessages[raw.Fields["response"]]; ok {
		return msg
	}
	return raw.Fields["message"]
}

// classify turns one flattened response into the caller-facing result.
// A code outside the success set is a normal, fully-parsed decline, not
// an error.
func classify(raw *RawResponse) *GatewayResponse {
	code := raw.Fields["response"]
	success := successCodes[code]
	resp := &GatewayResponse{
		Success:       success,
		Message:       responseMessage(raw),
		Kind:          raw.Kind,
		CorrelationID: raw.CorrelationID,
		ReportGroup:   raw.ReportGroup,
		BatchID:       raw.BatchID,
		ResponseCode:  code,
		AVSResult:     avsCode(raw.Fields["avs_result"]),
		CVVResult:     raw.Fields["card_validation_result"],
		Fields:        raw.Fields,
	}
	if success {
		token := AuthorizationToken{
			LitleTxnID: raw.Fields["litle_txn_id"],
			AuthCode:   raw.Fields["auth_code"],
		}
		resp.Authorization = token.String()
	}
	return resp
}

// correlationFault is the failed entry surfaced for a submitted id that
// never got a response
func correlationFault(id string) *GatewayResponse {
	return &GatewayResponse{
		Success:       false,
		Message:       "no response received for transaction",
		CorrelationID: id,
	}
}
