package litle

import (
	"context"
	"time"

	"github.com/kevin07696/litle-gateway/internal/adapters/ports"
	"github.com/kevin07696/litle-gateway/pkg/observability"
)

// Endpoints per the Litle integration guide. Cert hosts serve the
// certification (test) environment.
const (
	productionOnlineURL = "https://payments.litle.com/vap/communicator/online"
	certOnlineURL       = "https://cert.litle.com/vap/communicator/online"
	productionBatchURL  = "https://payments.litle.com:15000"
	certBatchURL        = "https://cert.litle.com:15000"
)

// Config carries the merchant credentials and endpoint selection for
// one gateway instance
type Config struct {
	MerchantID string
	Username   string
	Password   string
	// Test routes submissions to the certification endpoints
	Test bool
	// OnlineURL and BatchURL override the standard endpoints when set
	OnlineURL string
	BatchURL  string
	// RedactedFields extends the element names scrubbed from logged
	// payloads beyond the always-redacted password
	RedactedFields []string
}

func (c Config) onlineEndpoint() string {
	if c.OnlineURL != "" {
		return c.OnlineURL
	}
	if c.Test {
		return certOnlineURL
	}
	return productionOnlineURL
}

func (c Config) batchEndpoint() string {
	if c.BatchURL != "" {
		return c.BatchURL
	}
	if c.Test {
		return certBatchURL
	}
	return productionBatchURL
}

// Gateway is the Litle client adapter. It builds protocol payloads,
// hands them to the transport, and parses, correlates, and classifies
// whatever comes back. It performs no I/O of its own and implements no
// retry policy; both belong to the transport.
type Gateway struct {
	cfg       Config
	transport ports.Transport
	logger    ports.Logger
	builder   *requestBuilder
	sanitizer *Sanitizer
}

// New creates a gateway with injected transport and logger
func New(cfg Config, transport ports.Transport, logger ports.Logger) *Gateway {
	return &Gateway{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		builder:   newRequestBuilder(),
		sanitizer: NewSanitizer(cfg.RedactedFields...),
	}
}

// Authorize places a hold for amount (minor units) against a card or a
// prior authorization token
func (g *Gateway) Authorize(ctx context.Context, amount int64, source PaymentSource, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.authorization(amount, source, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// Capture settles a prior authorization. partial permits capturing less
// than the authorized amount.
func (g *Gateway) Capture(ctx context.Context, amount int64, token AuthorizationToken, partial bool, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.capture(amount, token, partial, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// Credit refunds against a prior token (follow-on) or a raw card
// (standalone)
func (g *Gateway) Credit(ctx context.Context, amount int64, source PaymentSource, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.credit(amount, source, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// Sale authorizes and captures in one operation
func (g *Gateway) Sale(ctx context.Context, amount int64, source PaymentSource, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.sale(amount, source, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// Void cancels an unsettled transaction. Voids only exist on the online
// path; the batch protocol accepts auth reversals instead.
func (g *Gateway) Void(ctx context.Context, token AuthorizationToken, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.void(token, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// AuthReversal releases a prior authorization's hold. A nil amount
// reverses the full authorization.
func (g *Gateway) AuthReversal(ctx context.Context, amount *int64, token AuthorizationToken, opts Options) (*GatewayResponse, error) {
	req, err := g.builder.authReversal(amount, token, opts)
	if err != nil {
		return nil, err
	}
	return g.submitOnline(ctx, req)
}

// SubmitBatch assembles one batch envelope from the grouped inputs,
// submits it, and returns results in the original submission order. An
// empty input short-circuits with no submission. A document-level
// failure comes back as a single failed result with no per-transaction
// breakdown.
func (g *Gateway) SubmitBatch(ctx context.Context, in BatchInput) ([]*GatewayResponse, error) {
	if in.empty() {
		g.logger.Debug("skipping empty batch submission")
		return []*GatewayResponse{}, nil
	}

	asm, err := g.assembleBatch(in)
	if err != nil {
		return nil, err
	}
	observability.RecordBatchSize(len(asm.IDs))
	g.logger.Debug("submitting batch request",
		ports.Int("transactions", len(asm.IDs)),
		ports.String("payload", g.sanitizer.Sanitize(string(asm.Payload))),
	)

	body, err := g.post(ctx, "batch", g.cfg.batchEndpoint(), asm.Payload)
	if err != nil {
		return nil, err
	}

	responses, fault, err := parseBatch(body)
	if err != nil {
		return nil, err
	}
	if fault != nil {
		observability.RecordProtocolFault()
		g.logger.Error("batch rejected at protocol level",
			ports.String("message", fault.Fields["message"]),
		)
		return []*GatewayResponse{classify(fault)}, nil
	}

	return g.classifyAll(correlate(asm.IDs, responses), asm.IDs), nil
}

// RequestForResponse retrieves the results of a previously submitted
// batch by its processor session id. With no local submission sequence
// to replay, result order is the parser's encounter order.
func (g *Gateway) RequestForResponse(ctx context.Context, sessionID string) ([]*GatewayResponse, error) {
	payload, err := g.assembleRFR(sessionID)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("requesting prior batch results",
		ports.String("session_id", sessionID),
	)

	body, err := g.post(ctx, "batch", g.cfg.batchEndpoint(), payload)
	if err != nil {
		return nil, err
	}

	responses, fault, err := parseBatch(body)
	if err != nil {
		return nil, err
	}
	if fault != nil {
		observability.RecordProtocolFault()
		return []*GatewayResponse{classify(fault)}, nil
	}
	return g.classifyAll(responses, nil), nil
}

func (g *Gateway) submitOnline(ctx context.Context, req *TransactionRequest) (*GatewayResponse, error) {
	payload, err := g.assembleOnline(req)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("submitting online request",
		ports.String("kind", string(req.Kind)),
		ports.String("id", req.ID),
		ports.String("payload", g.sanitizer.Sanitize(string(payload))),
	)

	body, err := g.post(ctx, "online", g.cfg.onlineEndpoint(), payload)
	if err != nil {
		return nil, err
	}

	raw, err := parseOnline(body)
	if err != nil {
		return nil, err
	}
	if raw.Kind == "" {
		observability.RecordProtocolFault()
		g.logger.Error("online request rejected at protocol level",
			ports.String("message", raw.Fields["message"]),
		)
	}
	resp := classify(raw)
	observability.RecordTransaction(string(req.Kind), resp.Success)
	return resp, nil
}

func (g *Gateway) post(ctx context.Context, mode, url string, payload []byte) ([]byte, error) {
	start := time.Now()
	body, err := g.transport.Post(ctx, url, payload)
	if err != nil {
		g.logger.Error("gateway submission failed",
			ports.String("mode", mode),
			ports.Err(err),
		)
		return nil, err
	}
	observability.RecordRoundTrip(mode, time.Since(start))
	g.logger.Debug("received gateway response",
		ports.String("mode", mode),
		ports.String("payload", g.sanitizer.Sanitize(string(body))),
	)
	return body, nil
}

func (g *Gateway) classifyAll(ordered []*RawResponse, ids []string) []*GatewayResponse {
	out := make([]*GatewayResponse, len(ordered))
	for i, raw := range ordered {
		if raw == nil {
			observability.RecordCorrelationFault()
			g.logger.Warn("no response for submitted transaction",
				ports.String("id", ids[i]),
			)
			out[i] = correlationFault(ids[i])
			continue
		}
		out[i] = classify(raw)
		observability.RecordTransaction(string(raw.Kind), out[i].Success)
	}
	return out
}
