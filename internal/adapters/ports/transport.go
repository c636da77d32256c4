package ports

import "context"

// Transport performs one request/response exchange with the Litle
// processor over a secure channel. The gateway core builds and parses
// payloads but never touches the network itself; retry, timeout, and
// connection policy all live behind this interface.
type Transport interface {
	// Post submits an XML payload to the given endpoint and returns
	// the raw response document.
	Post(ctx context.Context, url string, payload []byte) ([]byte, error)
}
