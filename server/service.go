/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/ulogger"
	"github.com/coinsage/coinsage/server/api"
	"github.com/coinsage/coinsage/server/bot"
	"github.com/coinsage/coinsage/server/data"
	"github.com/coinsage/coinsage/server/extractor"
	"github.com/coinsage/coinsage/server/global"
	"github.com/coinsage/coinsage/server/llm"
	"github.com/coinsage/coinsage/server/market"
	"github.com/coinsage/coinsage/server/queue"
	"github.com/coinsage/coinsage/server/router"
	"github.com/coinsage/coinsage/server/token"
)

var errNoModel = errors.New("GEMINI_API_KEY not configured")

// startService runs the bot, the API and background tasks until SIGINT or SIGTERM
func startService() {
	var err error

	// Load the configuration
	conf, err = global.Config()
	if err != nil {
		// Try to create a logger and write the fatal error
		var loggerErr error
		logger, loggerErr = ulogger.New(
			ulogger.WithPrefix(global.LogName),
			ulogger.WithLogStdout(true),
			ulogger.WithRetention(0),
			ulogger.WithDebug(global.Debug))

		if loggerErr != nil {
			fmt.Printf("Fatal logger error: %s\n", loggerErr.Error())
			exit(1, false)
		}
		logger.Fatalf(1001, "unable to load config: %s", err.Error())
		exit(1, false)
	}

	// Create a logger using the loaded configuration
	ul, err := ulogger.New(
		ulogger.WithPrefix(global.LogName),
		ulogger.WithLogFile(conf.SC.Get(global.ConfigLogFile).String()),
		ulogger.WithLogStdout(conf.SC.Get(global.ConfigLogStdout).Bool()),
		ulogger.WithRetention(conf.SC.Get(global.ConfigLogRetention).Int()),
		ulogger.WithDebug(global.Debug))
	if err != nil {
		fmt.Printf("error creating logger: %v\n", err)
		exit(1, false)
	}
	defer ul.Close()
	logger = ul

	logger.Info(1000, fmt.Sprintf("%s %s build %d starting", global.Name, global.Version, global.Build),
		fields.NewFields(fields.NewField("files", strings.Join(conf.C.Files(), ","))))
	for _, key := range conf.MissingCredentials() {
		logger.Warning(1002, "required credential not set", fields.NewFields(fields.NewField("key", key)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	// Expiring cache shared by every component
	c := cache.New(
		cache.WithLogger(logger),
		cache.WithSweepInterval(conf.SC.Get(global.ConfigCacheSweep).Seconds()))
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Run(ctx)
	}()

	// Query log
	d, err := data.New(conf, logger)
	if err != nil {
		logger.Fatalf(1003, "unable to open database: %s", err.Error())
		exit(1, false)
	}
	defer d.Close()

	wg.Add(1)
	go func() {
		defer wg.Done()
		pruneLoop(ctx, d)
	}()

	// Chat handlers record queries through the queue. It outlives ctx so that
	// replies still in flight at shutdown are recorded.
	queries := queue.New(global.QueryQueueSize, logger)
	queueCtx, stopQueue := context.WithCancel(context.Background())
	queueDone := make(chan struct{})
	go func() {
		defer close(queueDone)
		queries.Run(queueCtx, d)
	}()

	// Read-only API
	apiInstance, err := api.New(conf, d, logger)
	if err != nil {
		logger.Fatalf(1004, "unable to create API: %s", err.Error())
		exit(1, false)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		apiInstance.Start()
	}()

	// Chat bot
	tokens, closeModel := buildTokenService(ctx, c, queries)
	defer closeModel()

	remote := conf.BC.Get(global.ConfigRemoteTimeout).Seconds()
	dispatcher := bot.NewDispatcher(
		router.New(tokens.Model(), router.WithLogger(logger), router.WithTimeout(remote)),
		tokens, c, bot.WithLogger(logger))

	if botToken := conf.SP.Get(global.ConfigTelegramToken).String(); botToken != "" {
		tg, tgErr := bot.NewTelegram(botToken, dispatcher,
			bot.WithTelegramLogger(logger),
			bot.WithMaxInFlight(conf.BC.Get(global.ConfigBotMaxInflight).Int()),
			bot.WithRequestTimeout(4*remote))
		if tgErr != nil {
			logger.Error(1005, "telegram bot not started", fields.NewFields(fields.Err(tgErr)))
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tg.Run(ctx)
			}()
		}
	}

	<-ctx.Done()
	logger.Info(1006, "shutting down", nil)
	apiInstance.Stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(global.ShutdownTimeout * time.Second):
		logger.Warning(1007, "timed out waiting for background tasks", nil)
	}

	// Producers have stopped; records logged after this are dropped with a warning
	stopQueue()
	<-queueDone
	logger.Info(1008, "stopped", nil)
}

// buildTokenService wires the market clients and the language model. The
// returned function releases the model client.
func buildTokenService(ctx context.Context, c *cache.Cache, sink token.QuerySink) (*token.Service, func()) {
	remote := conf.BC.Get(global.ConfigRemoteTimeout).Seconds()
	httpClient := &http.Client{Timeout: remote}

	dex := market.NewDexScreener(
		market.WithHTTPClient(httpClient),
		market.WithRate(conf.BC.Get(global.ConfigDexRate).Int()),
		market.WithLogger(logger))
	gecko := market.NewCoinGecko(
		market.WithHTTPClient(httpClient),
		market.WithRate(conf.BC.Get(global.ConfigCoinGeckoRate).Int()),
		market.WithLogger(logger))

	var model llm.Model = llm.ModelFunc(func(context.Context, string, string) (string, error) {
		return "", errNoModel
	})
	closeModel := func() {}

	if key := conf.SP.Get(global.ConfigGeminiKey).String(); key != "" {
		g, err := llm.NewGemini(ctx, key,
			llm.WithModel(conf.BC.Get(global.ConfigGeminiModel).String()),
			llm.WithTemperature(float32(conf.BC.Get(global.ConfigLLMTemperature).Float64())),
			llm.WithTimeout(remote),
			llm.WithLogger(logger))
		if err != nil {
			logger.Error(1009, "gemini client not created", fields.NewFields(fields.Err(err)))
		} else {
			model = g
			closeModel = func() { _ = g.Close() }
		}
	}

	tokens := token.New(dex, gecko, model, c,
		token.WithLogger(logger),
		token.WithQuerySink(sink),
		token.WithExtractor(extractor.New(model, extractor.WithLogger(logger), extractor.WithTimeout(remote))))
	return tokens, closeModel
}

// pruneLoop prunes the query log at startup and then daily
func pruneLoop(ctx context.Context, d *data.Data) {
	d.PruneDB()

	ticker := time.NewTicker(global.PruneInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.PruneDB()
		}
	}
}
