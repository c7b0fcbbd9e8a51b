// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quangdm/revio/internal/platform/constants"
)

// RedisOutboxNotifier queues confirmation emails onto a Redis list that an
// out-of-process mailer daemon drains. Keeping SMTP out of the request path
// means signup latency does not depend on the mail provider.
type RedisOutboxNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisOutboxNotifier constructs a notifier backed by the mail outbox list.
func NewRedisOutboxNotifier(client *redis.Client, logger *slog.Logger) *RedisOutboxNotifier {
	return &RedisOutboxNotifier{client: client, logger: logger}
}

// outboxMessage is the wire format consumed by the mailer daemon.
type outboxMessage struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

// Notify pushes a confirmation email onto the outbox list.
func (notifier *RedisOutboxNotifier) Notify(context context.Context, email, username, code string) error {
	message := outboxMessage{
		To:       email,
		Subject:  "Your Revio confirmation code",
		Body:     fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", username, code),
		QueuedAt: time.Now(),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("notify: failed to encode outbox message: %w", err)
	}

	if err := notifier.client.LPush(context, constants.RedisKeyMailOutbox, payload).Err(); err != nil {
		return fmt.Errorf("notify: failed to queue outbox message: %w", err)
	}

	notifier.logger.Info("confirmation_code_queued",
		slog.String("username", username),
	)

	return nil
}
