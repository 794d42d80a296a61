package bot

import (
	"fmt"
	"log"
	"time"

	tele "gopkg.in/telebot.v3"

	"svitlo-board/internal/board"
	"svitlo-board/internal/database"
)

// Bot wraps the Telegram bot and the subscription flows.
type Bot struct {
	bot    *tele.Bot
	db     *database.DB
	client *board.Client
}

var htmlOpts = &tele.SendOptions{ParseMode: tele.ModeHTML}

// New creates and configures the Telegram bot.
func New(token string, db *database.DB, client *board.Client) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		db:     db,
		client: client,
	}

	bot.registerHandlers()

	if err := b.SetCommands([]tele.Command{
		{Text: "today", Description: "Графік відключень на сьогодні"},
		{Text: "subscribe", Description: "Підписатися на групу відключень"},
		{Text: "unsubscribe", Description: "Скасувати підписку"},
		{Text: "help", Description: "Довідка про команди"},
	}); err != nil {
		log.Printf("[bot] failed to set commands: %v", err)
	}

	return bot, nil
}

// Start begins polling for Telegram updates. Call as a goroutine.
func (b *Bot) Start() {
	log.Println("[bot] starting Telegram bot polling...")
	b.bot.Start()
}

// Stop gracefully stops the bot.
func (b *Bot) Stop() {
	b.bot.Stop()
}

// TeleBot returns the underlying telebot instance (used by the listener).
func (b *Bot) TeleBot() *tele.Bot {
	return b.bot
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/help", b.handleHelp)
	b.bot.Handle("/today", b.handleToday)
	b.bot.Handle("/subscribe", b.handleSubscribe)
	b.bot.Handle("/unsubscribe", b.handleUnsubscribe)

	// Callback queries for inline buttons.
	b.bot.Handle(tele.OnCallback, b.handleCallback)
}
