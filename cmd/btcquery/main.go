// Command btcquery prints a snapshot of the chain, mempool, fees and
// the current BTC price from a local Bitcoin Core node.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcquery"
	"github.com/goodnatureofminers/btcquery/model"
)

type config struct {
	NodeURL         string        `long:"node-url" env:"BTCQUERY_NODE_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	NodeUser        string        `long:"node-user" env:"BTCQUERY_NODE_USER" description:"Bitcoin RPC username"`
	NodePassword    string        `long:"node-password" env:"BTCQUERY_NODE_PASSWORD" description:"Bitcoin RPC password"`
	Network         string        `long:"network" env:"BTCQUERY_NETWORK" description:"network name" default:"mainnet"`
	CoinGeckoAPIKey string        `long:"coingecko-api-key" env:"BTCQUERY_COINGECKO_API_KEY" description:"CoinGecko API key"`
	PreferredSource string        `long:"preferred-price-source" env:"BTCQUERY_PREFERRED_PRICE_SOURCE" description:"price source tried first (coingecko or binance)"`
	RequestTimeout  time.Duration `long:"request-timeout" env:"BTCQUERY_REQUEST_TIMEOUT" description:"timeout per price API request" default:"10s"`
	ConfTarget      int64         `long:"conf-target" env:"BTCQUERY_CONF_TARGET" description:"fee estimate confirmation target" default:"6"`
	ResolveInputs   bool          `long:"resolve-inputs" env:"BTCQUERY_RESOLVE_INPUTS" description:"resolve inputs of the latest block to compute fees"`
	WatchPrice      time.Duration `long:"watch-price" env:"BTCQUERY_WATCH_PRICE" description:"keep sampling the price on this interval after the snapshot"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("btcquery failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	client, err := btcquery.New(btcquery.Config{
		NodeURL:              cfg.NodeURL,
		NodeUser:             cfg.NodeUser,
		NodePass:             cfg.NodePassword,
		Network:              cfg.Network,
		CoinGeckoAPIKey:      cfg.CoinGeckoAPIKey,
		PreferredPriceSource: model.PriceSource(cfg.PreferredSource),
		RequestTimeout:       cfg.RequestTimeout,
		Logger:               logger,
	})
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}
	defer client.Close()

	if err := printSnapshot(ctx, client, cfg); err != nil {
		return err
	}

	if cfg.WatchPrice <= 0 {
		return nil
	}
	logger.Info("watching price", zap.Duration("interval", cfg.WatchPrice))
	monitor, err := client.MonitorPrice(ctx, cfg.WatchPrice, func(quote model.PriceQuote) {
		fmt.Printf("%s  %s/%s  %s  (%s)\n",
			quote.Time.Format(time.RFC3339), quote.Base, quote.Quote, quote.Price, quote.Source)
	})
	if err != nil {
		return err
	}
	defer monitor.Stop()

	<-ctx.Done()
	return nil
}

func printSnapshot(ctx context.Context, client *btcquery.Client, cfg config) error {
	info, err := client.GetChainInfo(ctx)
	if err != nil {
		return fmt.Errorf("chain info: %w", err)
	}
	fmt.Printf("chain:          %s\n", info.Chain)
	fmt.Printf("blocks:         %d\n", info.Blocks)
	fmt.Printf("best block:     %s\n", info.BestBlockHash)
	fmt.Printf("difficulty:     %.2f\n", info.Difficulty)

	var opts []btcquery.QueryOption
	if cfg.ResolveInputs {
		opts = append(opts, btcquery.WithResolvedInputs())
	}
	block, err := client.GetLatestBlock(ctx, opts...)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}
	stats := block.Stats()
	fmt.Printf("\nblock %d (%s)\n", block.Height, block.Hash)
	fmt.Printf("transactions:   %d\n", len(block.Transactions))
	fmt.Printf("total value:    %s BTC\n", model.SatoshisToBTC(stats.TotalValue))
	if cfg.ResolveInputs {
		fmt.Printf("total fees:     %s BTC\n", model.SatoshisToBTC(stats.TotalFees))
		fmt.Printf("mean fee rate:  %s sat/vB\n", stats.MeanFeeRate.StringFixed(2))
		fmt.Printf("median rate:    %s sat/vB\n", stats.MedianFeeRate.StringFixed(2))
	}

	mempool, err := client.GetMempoolInfo(ctx)
	if err != nil {
		return fmt.Errorf("mempool info: %w", err)
	}
	fmt.Printf("\nmempool txs:    %d\n", mempool.TxCount)
	fmt.Printf("mempool bytes:  %d\n", mempool.Bytes)

	estimate, err := client.EstimateFee(ctx, cfg.ConfTarget)
	if err != nil {
		fmt.Printf("fee estimate:   unavailable (%v)\n", err)
	} else {
		fmt.Printf("fee estimate:   %s sat/vB for %d blocks\n", estimate.SatPerVByte.StringFixed(2), estimate.ConfTarget)
	}

	quote, err := client.GetPrice(ctx)
	if err != nil {
		fmt.Printf("price:          unavailable (%v)\n", err)
		return nil
	}
	fmt.Printf("price:          %s %s/%s (%s)\n", quote.Price, quote.Base, quote.Quote, quote.Source)
	return nil
}
