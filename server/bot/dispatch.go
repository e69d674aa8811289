/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package bot turns chat messages into replies. Each message is classified
// by the router and dispatched to the handler for its intent.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/server/router"
	"github.com/coinsage/coinsage/server/token"
)

// Message is a chat message independent of the transport
type Message struct {
	ChatID  int64
	UserID  string
	Text    string
	Command string
}

// Classifier maps free text to an intent
type Classifier interface {
	Route(ctx context.Context, text string) router.Intent
}

type Dispatcher struct {
	classifier Classifier
	tokens     *token.Service
	cache      interfaces.Cache
	logger     interfaces.Logger
	now        func() time.Time
}

type Option func(*Dispatcher)

func WithLogger(logger interfaces.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithNow sets the clock used for date-keyed replies
func WithNow(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func NewDispatcher(classifier Classifier, tokens *token.Service, c interfaces.Cache, options ...Option) *Dispatcher {
	d := &Dispatcher{
		classifier: classifier,
		tokens:     tokens,
		cache:      c,
		logger:     null.Logger(),
		now:        time.Now,
	}
	for _, op := range options {
		op(d)
	}
	return d
}

// Handle returns the reply for msg. An empty reply means nothing is sent.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) string {
	switch msg.Command {
	case "":
	case "start":
		return startReply
	case "help":
		return helpReply
	default:
		return unknownCommandReply
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return ""
	}

	intent := d.classifier.Route(ctx, text)
	d.logger.Info(4001, "message routed", fields.NewFields(
		fields.NewField("user", msg.UserID),
		fields.NewField("intent", string(intent.Kind())),
		fields.NewField("text", common.Truncate(common.SingleLine(text), 120))))

	switch in := intent.(type) {
	case router.PriceQuery:
		return d.price(ctx, msg, in.Symbol)
	case router.AddressLookup:
		return d.address(ctx, msg, in.Address)
	case router.MarketTrend:
		return d.trends(ctx)
	case router.Recommendation:
		return d.recommend(ctx, in.Category)
	case router.Comparison:
		return d.compare(ctx, in.Query)
	case router.GeneralQuestion:
		return d.general(ctx, in.Question)
	default:
		// Intent is sealed; reaching this is a programming error
		panic(fmt.Sprintf("unhandled intent %T", intent))
	}
}
