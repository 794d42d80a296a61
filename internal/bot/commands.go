package bot

import (
	"context"
	"fmt"
	"html"
	"log"

	tele "gopkg.in/telebot.v3"
)

// ── Simple commands ──────────────────────────────────────────────────

func (b *Bot) handleStart(c tele.Context) error {
	log.Printf("[bot] /start from user %d (@%s)", c.Sender().ID, c.Sender().Username)
	return c.Send(msgStart, htmlOpts)
}

func (b *Bot) handleHelp(c tele.Context) error {
	log.Printf("[bot] /help from user %d (@%s)", c.Sender().ID, c.Sender().Username)
	return c.Send(msgHelp, htmlOpts)
}

// ── /subscribe ───────────────────────────────────────────────────────

// handleSubscribe shows the region picker; the group choice follows as
// a callback.
func (b *Bot) handleSubscribe(c tele.Context) error {
	log.Printf("[bot] /subscribe from user %d (@%s)", c.Sender().ID, c.Sender().Username)
	regions, err := b.client.GetRegions()
	if err != nil {
		log.Printf("[bot] get regions error: %v", err)
		return c.Send(msgFetchError, htmlOpts)
	}

	rows := make([][]tele.InlineButton, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []tele.InlineButton{
			{Text: r.RegionID, Data: "sub_r:" + r.RegionID},
		})
	}
	keyboard := &tele.ReplyMarkup{InlineKeyboard: rows}
	return c.Send(msgSubscribeRegion, htmlOpts, keyboard)
}

// ── /unsubscribe ─────────────────────────────────────────────────────

func (b *Bot) handleUnsubscribe(c tele.Context) error {
	log.Printf("[bot] /unsubscribe from user %d (@%s)", c.Sender().ID, c.Sender().Username)
	subs, err := b.db.GetSubscriptionsByChat(context.Background(), c.Chat().ID)
	if err != nil {
		log.Printf("[bot] get subscriptions error: %v", err)
		return c.Send(msgError, htmlOpts)
	}
	if len(subs) == 0 {
		return c.Send(msgNoSubscriptions, htmlOpts)
	}

	rows := make([][]tele.InlineButton, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []tele.InlineButton{
			{
				Text: fmt.Sprintf("%s / %s", s.Region, s.GroupID),
				Data: fmt.Sprintf("unsub:%d", s.ID),
			},
		})
	}
	keyboard := &tele.ReplyMarkup{InlineKeyboard: rows}
	return c.Send(msgUnsubscribeChoose, htmlOpts, keyboard)
}

// ── /today ───────────────────────────────────────────────────────────

// handleToday sends the current digest for every subscription of the chat.
func (b *Bot) handleToday(c tele.Context) error {
	log.Printf("[bot] /today from user %d (@%s)", c.Sender().ID, c.Sender().Username)
	subs, err := b.db.GetSubscriptionsByChat(context.Background(), c.Chat().ID)
	if err != nil {
		log.Printf("[bot] get subscriptions error: %v", err)
		return c.Send(msgError, htmlOpts)
	}
	if len(subs) == 0 {
		return c.Send(msgNoSubscriptions, htmlOpts)
	}

	for _, s := range subs {
		dayBoard, err := b.client.GetDayBoard(s.Region)
		if err != nil {
			log.Printf("[bot] get day board for %s error: %v", s.Region, err)
			if err := c.Send(fmt.Sprintf(msgRegionFetchError, html.EscapeString(s.Region)), htmlOpts); err != nil {
				return err
			}
			continue
		}
		if err := c.Send(RenderGroupDigest(dayBoard, s.GroupID), htmlOpts); err != nil {
			return err
		}
	}
	return nil
}
