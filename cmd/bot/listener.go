package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	tele "gopkg.in/telebot.v3"

	"svitlo-board/internal/board"
	"svitlo-board/internal/bot"
	"svitlo-board/internal/cache"
	"svitlo-board/internal/database"
	"svitlo-board/internal/mq"
)

var htmlOpts = &tele.SendOptions{ParseMode: tele.ModeHTML}

// listener consumes schedule events from RabbitMQ and fans them out as
// Telegram messages to subscribed chats.
type listener struct {
	bot      *tele.Bot
	db       *database.DB
	cache    *cache.Cache
	client   *board.Client
	consumer *mq.Consumer
}

func newListener(b *tele.Bot, db *database.DB, c *cache.Cache, client *board.Client, consumer *mq.Consumer) *listener {
	return &listener{bot: b, db: db, cache: c, client: client, consumer: consumer}
}

func (l *listener) start(ctx context.Context) {
	updatedCh, err := l.consumer.Consume(mq.QueueScheduleUpdated)
	if err != nil {
		log.Fatalf("[listener] failed to consume %s: %v", mq.QueueScheduleUpdated, err)
	}
	overlapCh, err := l.consumer.Consume(mq.QueueOverlapAlert)
	if err != nil {
		log.Fatalf("[listener] failed to consume %s: %v", mq.QueueOverlapAlert, err)
	}

	log.Println("[listener] consuming from schedule_updated, overlap_alert")

	for {
		select {
		case <-ctx.Done():
			log.Println("[listener] stopped")
			return
		case d, ok := <-updatedCh:
			if !ok {
				return
			}
			l.handleScheduleUpdated(ctx, d.Body)
			d.Ack(false)
		case d, ok := <-overlapCh:
			if !ok {
				return
			}
			l.handleOverlapAlert(ctx, d.Body)
			d.Ack(false)
		}
	}
}

// ── Schedule updated handler ─────────────────────────────────────────

func (l *listener) handleScheduleUpdated(ctx context.Context, payload []byte) {
	var msg mq.ScheduleUpdatedMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Printf("[listener] bad schedule_updated message: %v", err)
		return
	}

	subs, err := l.db.GetSubscribersByRegion(ctx, msg.Region)
	if err != nil {
		log.Printf("[listener] subscribers for %s: %v", msg.Region, err)
		return
	}
	if len(subs) == 0 {
		return
	}

	day, err := l.client.GetDayBoard(msg.Region)
	if err != nil {
		log.Printf("[listener] day board for %s: %v", msg.Region, err)
		return
	}

	stamp := msg.FactUpdate
	if stamp == "" {
		stamp = msg.LastUpdated
	}

	sent := 0
	for _, sub := range subs {
		first, err := l.cache.MarkDigestSent(ctx, sub.ChatID, sub.Region, sub.GroupID, stamp)
		if err != nil {
			// On a dedup hiccup a duplicate beats silence.
			log.Printf("[listener] digest dedup for chat %d: %v", sub.ChatID, err)
		} else if !first {
			continue
		}

		text := bot.RenderGroupDigest(day, sub.GroupID)
		if _, err := l.bot.Send(&tele.Chat{ID: sub.ChatID}, text, htmlOpts); err != nil {
			log.Printf("[listener] send digest to chat %d: %v", sub.ChatID, err)
			continue
		}
		sent++
	}
	if sent > 0 {
		log.Printf("[listener] schedule_updated %s: sent %d digests", msg.Region, sent)
	}
}

// ── Overlap alert handler ────────────────────────────────────────────

func (l *listener) handleOverlapAlert(ctx context.Context, payload []byte) {
	var msg mq.OverlapAlertMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Printf("[listener] bad overlap_alert message: %v", err)
		return
	}

	subs, err := l.db.GetSubscribersByRegion(ctx, msg.Region)
	if err != nil {
		log.Printf("[listener] subscribers for %s: %v", msg.Region, err)
		return
	}

	text := bot.RenderOverlapAlert(msg.Region, msg.Groups, msg.Intervals)
	stamp := msg.Date + "|" + strings.Join(msg.Intervals, ",")

	// One alert per chat, even with several group subscriptions.
	seen := make(map[int64]bool)
	for _, sub := range subs {
		if seen[sub.ChatID] {
			continue
		}
		seen[sub.ChatID] = true

		first, err := l.cache.MarkDigestSent(ctx, sub.ChatID, sub.Region, "overlap", stamp)
		if err != nil {
			log.Printf("[listener] overlap dedup for chat %d: %v", sub.ChatID, err)
		} else if !first {
			continue
		}

		if _, err := l.bot.Send(&tele.Chat{ID: sub.ChatID}, text, htmlOpts); err != nil {
			log.Printf("[listener] send overlap alert to chat %d: %v", sub.ChatID, err)
		}
	}
}
