package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"barber-prices/logger"
	"barber-prices/pipeline"
	"barber-prices/refresher"
	"barber-prices/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const refreshCallback = "refresh"

const helpText = "Komande:\n" +
	"/start - Pokretanje bota\n" +
	"/help - Ova poruka\n" +
	"/prices - Osveži i prikaži cene berberskih usluga\n\n" +
	"Dugme 🔄 ispod izveštaja ponovo pokreće osvežavanje."

// API is the subset of the Telegram client used by the bot
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Refresher produces price snapshots on demand
type Refresher interface {
	Refresh(ctx context.Context) (*refresher.Snapshot, error)
}

// Exporter receives every completed snapshot
type Exporter interface {
	WriteSnapshot(ctx context.Context, snap *refresher.Snapshot) error
}

// Bot answers Telegram commands with freshly aggregated prices
type Bot struct {
	api            API
	refresher      Refresher
	exporter       Exporter
	allowed        map[int64]bool
	spreadsheetURL string
	log            *logger.Logger

	wg sync.WaitGroup
}

// New creates a bot. An empty allow-list lets every user in.
func New(api API, r Refresher, allowedUsers []int64, log *logger.Logger) *Bot {
	allowed := make(map[int64]bool, len(allowedUsers))
	for _, id := range allowedUsers {
		allowed[id] = true
	}
	return &Bot{
		api:       api,
		refresher: r,
		allowed:   allowed,
		log:       log,
	}
}

// WithExporter exports every successful refresh and links the spreadsheet on /start
func (b *Bot) WithExporter(e Exporter, spreadsheetURL string) *Bot {
	b.exporter = e
	b.spreadsheetURL = spreadsheetURL
	return b
}

// Run handles updates until ctx is cancelled or the channel is closed,
// then waits for refreshes in flight
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.Handle(ctx, update)
		}
	}
}

// Wait blocks until every refresh started by Handle has finished
func (b *Bot) Wait() {
	b.wg.Wait()
}

// Handle dispatches one update. Refreshes run in the background.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		b.handleCallback(ctx, cb)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	if !b.isAllowed(msg.From.ID) {
		b.log.Warn("unauthorized user", "user_id", msg.From.ID)
		b.send(tgbotapi.NewMessage(chatID, "Nažalost, nemate pristup ovom botu."))
		return
	}

	if !msg.IsCommand() {
		b.send(tgbotapi.NewMessage(chatID, "Pošaljite /prices za pregled cena ili /help za listu komandi."))
		return
	}

	switch msg.Command() {
	case "start":
		b.send(tgbotapi.NewMessage(chatID, "Dobrodošli! Pratim cene šišanja, brijanja brade i pranja kose u berbernicama. Pošaljite /prices."))
		if b.spreadsheetURL != "" {
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("📊 Tabela: %s", b.spreadsheetURL)))
		}
	case "help":
		b.send(tgbotapi.NewMessage(chatID, helpText))
	case "prices":
		b.startRefresh(ctx, chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Nepoznata komanda. Pošaljite /help za listu komandi."))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || !b.isAllowed(cb.From.ID) {
		b.request(tgbotapi.NewCallback(cb.ID, "Nemate pristup."))
		return
	}
	b.request(tgbotapi.NewCallback(cb.ID, ""))

	if cb.Data != refreshCallback || cb.Message == nil {
		return
	}
	b.startRefresh(ctx, cb.Message.Chat.ID)
}

func (b *Bot) startRefresh(ctx context.Context, chatID int64) {
	status, err := b.api.Send(tgbotapi.NewMessage(chatID, "⏳ Osvežavam cene..."))
	if err != nil {
		b.log.Error("failed to send status message", "chat_id", chatID, "error", err)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.refresh(ctx, chatID, status.MessageID)
	}()
}

func (b *Bot) refresh(ctx context.Context, chatID int64, messageID int) {
	snap, err := b.refresher.Refresh(ctx)
	if errors.Is(err, refresher.ErrSuperseded) {
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, "⏭ Zamenjeno novijim osvežavanjem."))
		return
	}
	if snap == nil {
		b.log.Error("refresh failed", "error", err)
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("❌ Osvežavanje nije uspelo: %v", err)))
		return
	}
	if errors.Is(err, pipeline.ErrAllSourcesFailed) {
		b.log.Warn("all sources failed", "run_id", snap.Result.RunID)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, report.TelegramHTML(snap), refreshKeyboard())
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(edit)

	if b.exporter != nil && err == nil {
		if err := b.exporter.WriteSnapshot(ctx, snap); err != nil {
			b.log.Error("failed to export snapshot", "error", err)
		}
	}
}

func refreshKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Osveži", refreshCallback),
		),
	)
}

func (b *Bot) isAllowed(userID int64) bool {
	return len(b.allowed) == 0 || b.allowed[userID]
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error("failed to send message", "error", err)
	}
}

func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.log.Error("failed to answer callback", "error", err)
	}
}
