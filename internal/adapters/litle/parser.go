package litle

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
)

// xmlNode is a generic element used to walk response documents without
// committing to a fixed schema: the processor nests fields differently
// per transaction kind.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

const responseSuffix = "Response"

// responseKind extracts the transaction kind from a <X>Response tag
func responseKind(tag string) (TransactionKind, bool) {
	if strings.HasSuffix(tag, responseSuffix) && len(tag) > len(responseSuffix) {
		return TransactionKind(strings.TrimSuffix(tag, responseSuffix)), true
	}
	return "", false
}

// flatten assigns every leaf text node into fields, keyed by the
// snake_case form of its tag. Container elements contribute no key of
// their own, only their descendants do.
func flatten(fields map[string]string, n *xmlNode) {
	if len(n.Children) == 0 {
		fields[underscore(n.XMLName.Local)] = strings.TrimSpace(n.Text)
		return
	}
	for i := range n.Children {
		flatten(fields, &n.Children[i])
	}
}

// underscore converts camelCase tags to lower snake_case, e.g.
// litleTxnId -> litle_txn_id, AVSResult -> avs_result
func underscore(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// protocolFault wraps a document-level failure: only the message
// attribute is available, no per-transaction detail
func protocolFault(message string) *RawResponse {
	return &RawResponse{Fields: map[string]string{"message": message}}
}

// parseTransactionResponse flattens one <kind>Response element,
// reading the correlation id and report group off its attributes
func parseTransactionResponse(node *xmlNode, batchID string) *RawResponse {
	raw := &RawResponse{BatchID: batchID, Fields: make(map[string]string)}
	if kind, ok := responseKind(node.XMLName.Local); ok {
		raw.Kind = kind
		raw.CorrelationID = node.attr("id")
		raw.ReportGroup = node.attr("reportGroup")
	}
	flatten(raw.Fields, node)
	return raw
}

// parseOnline parses a single-transaction response document. A non-zero
// document status yields a protocol fault carrying only the message.
func parseOnline(doc []byte) (*RawResponse, error) {
	var root xmlNode
	if err := xml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("malformed response document: %w", err)
	}
	if root.XMLName.Local != "litleOnlineResponse" {
		return nil, fmt.Errorf("unexpected root element %q", root.XMLName.Local)
	}
	if root.attr("response") != "0" {
		return protocolFault(root.attr("message")), nil
	}
	for i := range root.Children {
		node := &root.Children[i]
		if _, ok := responseKind(node.XMLName.Local); ok {
			return parseTransactionResponse(node, ""), nil
		}
	}
	return protocolFault(root.attr("message")), nil
}

// parseBatch parses a batch response envelope into per-transaction
// responses in document order. Every transaction under a batchResponse
// wrapper inherits its litleBatchId. A non-zero document status, or a
// document with no transactions at all, yields a protocol fault.
func parseBatch(doc []byte) ([]*RawResponse, *RawResponse, error) {
	var root xmlNode
	if err := xml.Unmarshal(doc, &root); err != nil {
		return nil, nil, fmt.Errorf("malformed response document: %w", err)
	}
	if root.XMLName.Local != "litleResponse" {
		return nil, nil, fmt.Errorf("unexpected root element %q", root.XMLName.Local)
	}
	if root.attr("response") != "0" {
		return nil, protocolFault(root.attr("message")), nil
	}
	var responses []*RawResponse
	for i := range root.Children {
		node := &root.Children[i]
		if node.XMLName.Local != "batchResponse" {
			continue
		}
		batchID := node.attr("litleBatchId")
		for j := range node.Children {
			txn := &node.Children[j]
			if _, ok := responseKind(txn.XMLName.Local); !ok {
				continue
			}
			responses = append(responses, parseTransactionResponse(txn, batchID))
		}
	}
	if len(responses) == 0 {
		return nil, protocolFault(root.attr("message")), nil
	}
	return responses, nil, nil
}
