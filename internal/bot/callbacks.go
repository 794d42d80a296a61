package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleCallback(c tele.Context) error {
	log.Printf("[bot] callback %q from user %d (@%s)", c.Callback().Data, c.Sender().ID, c.Sender().Username)
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: msgInvalidFormat})
	}

	switch parts[0] {
	case "sub_r":
		return b.onSubscribeRegion(c, parts[1])
	case "sub_g":
		if len(parts) < 3 {
			return c.Respond(&tele.CallbackResponse{Text: msgInvalidFormat})
		}
		return b.onSubscribeGroup(c, parts[1], parts[2])
	case "unsub":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgInvalidFormat})
		}
		return b.onUnsubscribe(c, id)
	default:
		return c.Respond(&tele.CallbackResponse{Text: msgUnknownAction})
	}
}

func (b *Bot) onSubscribeRegion(c tele.Context, region string) error {
	_ = c.Respond(&tele.CallbackResponse{})

	groups, err := b.client.GetGroups(region)
	if err != nil {
		log.Printf("[bot] get groups for %s error: %v", region, err)
		return c.Send(msgFetchError, htmlOpts)
	}
	if len(groups) == 0 {
		return c.Send(msgNoGroupsToday, htmlOpts)
	}

	var rows [][]tele.InlineButton
	// Show groups in rows of 3 buttons.
	for i := 0; i < len(groups); i += 3 {
		var row []tele.InlineButton
		for j := i; j < i+3 && j < len(groups); j++ {
			row = append(row, tele.InlineButton{
				Text: groups[j].Name,
				Data: fmt.Sprintf("sub_g:%s:%s", region, groups[j].ID),
			})
		}
		rows = append(rows, row)
	}
	keyboard := &tele.ReplyMarkup{InlineKeyboard: rows}
	return c.Send(msgSubscribeGroup, htmlOpts, keyboard)
}

func (b *Bot) onSubscribeGroup(c tele.Context, region, group string) error {
	_ = c.Respond(&tele.CallbackResponse{})

	sub, err := b.db.UpsertSubscription(context.Background(), c.Chat().ID, region, group)
	if err != nil {
		log.Printf("[bot] upsert subscription error: %v", err)
		return c.Send(msgError, htmlOpts)
	}

	confirm := fmt.Sprintf(msgSubscribed, html.EscapeString(sub.GroupID), html.EscapeString(sub.Region))
	if err := c.Send(confirm, htmlOpts); err != nil {
		return err
	}

	// Follow up with today's digest right away.
	dayBoard, err := b.client.GetDayBoard(region)
	if err != nil {
		log.Printf("[bot] get day board for %s error: %v", region, err)
		return nil
	}
	return c.Send(RenderGroupDigest(dayBoard, group), htmlOpts)
}

func (b *Bot) onUnsubscribe(c tele.Context, id int64) error {
	if err := b.db.DeleteSubscription(context.Background(), id, c.Chat().ID); err != nil {
		log.Printf("[bot] delete subscription error: %v", err)
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}
	_ = c.Respond(&tele.CallbackResponse{Text: msgUnsubscribedShort})
	return c.Send(msgUnsubscribed, htmlOpts)
}
