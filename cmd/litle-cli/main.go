package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/litle-gateway/internal/adapters/litle"
	"github.com/kevin07696/litle-gateway/internal/config"
	"github.com/kevin07696/litle-gateway/pkg/security"
)

// litle-cli submits a single online transaction against the gateway.
// Credentials come from the environment (LITLE_MERCHANT_ID,
// LITLE_USERNAME, LITLE_PASSWORD, LITLE_TEST); the transaction comes
// from flags.
func main() {
	var (
		op      = flag.String("op", "authorize", "operation: authorize, sale, capture, credit, void, reverse")
		amount  = flag.Int64("amount", 0, "amount in cents")
		orderID = flag.String("order", "", "order id")
		number  = flag.String("card", "", "card number")
		month   = flag.Int("month", 0, "card expiration month")
		year    = flag.Int("year", 0, "card expiration year")
		cvv     = flag.String("cvv", "", "card verification value")
		brand   = flag.String("brand", "visa", "card brand (visa, master, american_express, discover, diners_club, jcb)")
		token   = flag.String("token", "", "prior authorization token (litleTxnId;authCode)")
		partial = flag.Bool("partial", false, "permit partial capture")
	)
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	zapLogger := initLogger(cfg.Logger)
	defer zapLogger.Sync()

	transportCfg := litle.DefaultTransportConfig()
	transportCfg.Timeout = time.Duration(cfg.Gateway.Timeout) * time.Second
	transport := litle.NewHTTPTransport(transportCfg, zapLogger)

	gateway := litle.New(litle.Config{
		MerchantID: cfg.Gateway.MerchantID,
		Username:   cfg.Gateway.Username,
		Password:   cfg.Gateway.Password,
		Test:       cfg.Gateway.Test,
	}, transport, security.NewZapLogger(zapLogger))

	ctx, cancel := context.WithTimeout(context.Background(), 2*transportCfg.Timeout)
	defer cancel()

	resp, err := run(ctx, gateway, *op, *amount, *orderID, *number, *month, *year, *cvv, *brand, *token, *partial)
	if err != nil {
		fmt.Fprintln(os.Stderr, "transaction error:", err)
		os.Exit(1)
	}

	fmt.Printf("success:       %v\n", resp.Success)
	fmt.Printf("message:       %s\n", resp.Message)
	fmt.Printf("response code: %s\n", resp.ResponseCode)
	if resp.Authorization != "" {
		fmt.Printf("authorization: %s\n", resp.Authorization)
	}
	if resp.AVSResult != "" {
		fmt.Printf("avs:           %s\n", resp.AVSResult)
	}
	if resp.CVVResult != "" {
		fmt.Printf("cvv:           %s\n", resp.CVVResult)
	}
	if !resp.Success {
		os.Exit(1)
	}
}

func run(ctx context.Context, gateway *litle.Gateway, op string, amount int64, orderID, number string, month, year int, cvv, brand, token string, partial bool) (*litle.GatewayResponse, error) {
	opts := litle.Options{OrderID: orderID}
	card := litle.Card{
		Number:            number,
		Month:             month,
		Year:              year,
		VerificationValue: cvv,
		Brand:             brand,
	}

	switch op {
	case "authorize":
		return gateway.Authorize(ctx, amount, card, opts)
	case "sale":
		return gateway.Sale(ctx, amount, card, opts)
	case "credit":
		if token != "" {
			parsed, err := litle.ParseAuthorizationToken(token)
			if err != nil {
				return nil, err
			}
			return gateway.Credit(ctx, amount, parsed, opts)
		}
		return gateway.Credit(ctx, amount, card, opts)
	case "capture":
		parsed, err := litle.ParseAuthorizationToken(token)
		if err != nil {
			return nil, err
		}
		return gateway.Capture(ctx, amount, parsed, partial, opts)
	case "void":
		parsed, err := litle.ParseAuthorizationToken(token)
		if err != nil {
			return nil, err
		}
		return gateway.Void(ctx, parsed, opts)
	case "reverse":
		parsed, err := litle.ParseAuthorizationToken(token)
		if err != nil {
			return nil, err
		}
		var amt *int64
		if amount > 0 {
			amt = litle.Amount(amount)
		}
		return gateway.AuthReversal(ctx, amt, parsed, opts)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	return logger
}
