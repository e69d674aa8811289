/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package bot

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
)

const (
	DefaultMaxInFlight    = 32
	DefaultRequestTimeout = 60 * time.Second
	pollTimeout           = 60
)

var ErrNoToken = errors.New("telegram bot token not configured")

// Telegram long-polls the Bot API and answers each message on its own
// goroutine, bounded by maxInFlight
type Telegram struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	logger     interfaces.Logger
	sem        *semaphore.Weighted
	timeout    time.Duration
	wg         sync.WaitGroup
}

type TelegramOption func(*Telegram)

func WithTelegramLogger(logger interfaces.Logger) TelegramOption {
	return func(t *Telegram) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func WithMaxInFlight(n int) TelegramOption {
	return func(t *Telegram) {
		if n > 0 {
			t.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithRequestTimeout bounds the work done for one message
func WithRequestTimeout(d time.Duration) TelegramOption {
	return func(t *Telegram) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// NewTelegram authenticates with the Bot API
func NewTelegram(botToken string, dispatcher *Dispatcher, options ...TelegramOption) (*Telegram, error) {
	if botToken == "" {
		return nil, ErrNoToken
	}

	t := &Telegram{
		dispatcher: dispatcher,
		logger:     null.Logger(),
		sem:        semaphore.NewWeighted(DefaultMaxInFlight),
		timeout:    DefaultRequestTimeout,
	}
	for _, op := range options {
		op(t)
	}

	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	t.api = api
	t.logger.Info(4050, "telegram bot authorized", fields.NewFields(fields.NewField("username", api.Self.UserName)))
	return t, nil
}

// Run receives updates until ctx is cancelled, then waits for in-flight
// replies to finish
func (t *Telegram) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := t.api.GetUpdatesChan(u)

	defer func() {
		t.api.StopReceivingUpdates()
		t.wg.Wait()
		t.logger.Info(4052, "telegram bot stopped", nil)
	}()

	t.logger.Info(4051, "telegram bot receiving updates", nil)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			if err := t.sem.Acquire(ctx, 1); err != nil {
				return
			}
			t.wg.Add(1)
			go func(m *tgbotapi.Message) {
				defer t.wg.Done()
				defer t.sem.Release(1)
				t.reply(ctx, m)
			}(update.Message)
		}
	}
}

func (t *Telegram) reply(parent context.Context, m *tgbotapi.Message) {
	defer func() {
		if p := recover(); p != nil {
			t.logger.Errorf(4059, "panic handling message: %v", p)
		}
	}()

	// Shutdown does not abandon a reply that is already being built
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), t.timeout)
	defer cancel()

	msg := Message{ChatID: m.Chat.ID, Text: m.Text}
	if m.From != nil {
		msg.UserID = strconv.FormatInt(m.From.ID, 10)
	}
	if m.IsCommand() {
		msg.Command = m.Command()
	}

	if msg.Command == "" {
		if _, err := t.api.Request(tgbotapi.NewChatAction(msg.ChatID, tgbotapi.ChatTyping)); err != nil {
			t.logger.Debug(4053, "chat action failed", fields.NewFields(fields.Err(err)))
		}
	}

	text := t.dispatcher.Handle(ctx, msg)
	if text == "" {
		return
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(msg.ChatID, text)); err != nil {
		t.logger.Warning(4054, "reply not sent", fields.NewFields(
			fields.NewField("chat", msg.ChatID),
			fields.NewField("error", common.SingleLine(err.Error()))))
	}
}
