// Package bot routes incoming Telegram messages to command handlers.
package bot

import (
	"context"
	"fmt"
	"strings"

	"foliobot/internal/database"
	"foliobot/internal/portfolio"
	"foliobot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Sender is the outbound half of the Telegram API. *tgbotapi.BotAPI
// satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reply keyboard button labels. Their literal text is routed as an alias of
// the corresponding command.
const (
	ButtonAdd       = "➕ Add position"
	ButtonPortfolio = "📊 Portfolio"
)

const (
	msgStart = "Hi! I track your investment portfolio.\n" +
		"Commands:\n" +
		"/add TICKER QTY PRICE — record a purchase\n" +
		"/portfolio — show your portfolio\n" +
		"/help — help"
	msgHelp = "Commands:\n" +
		"/add TICKER QTY PRICE — record a purchase\n" +
		"/portfolio — show your portfolio"
	msgAddUsage       = "Format: /add TICKER QTY PRICE\nExample: /add AAPL 10 150"
	msgAddNotNumbers  = "Quantity and price must be numbers"
	msgEmptyPortfolio = "Your portfolio is empty. Add a position with /add"
	msgStorageFailure = "Something went wrong, please try again later"
	msgUnknownCommand = "Unknown command. See /help"
	msgNotACommand    = "I only understand commands and the buttons below. See /help"
)

type handlerFunc func(ctx context.Context, msg *tgbotapi.Message, args []string)

// Router dispatches messages by command name. The store, quote provider and
// logger are injected once at startup; handlers hold no global state.
type Router struct {
	api    Sender
	store  *database.Repo
	quotes service.PriceProvider
	log    *logrus.Logger

	routes  map[string]handlerFunc
	aliases map[string]string
}

func NewRouter(api Sender, store *database.Repo, quotes service.PriceProvider, log *logrus.Logger) *Router {
	r := &Router{
		api:    api,
		store:  store,
		quotes: quotes,
		log:    log,
	}
	r.routes = map[string]handlerFunc{
		"/start":     r.handleStart,
		"/add":       r.handleAdd,
		"/portfolio": r.handlePortfolio,
		"/help":      r.handleHelp,
	}
	r.aliases = map[string]string{
		ButtonAdd:       "/add",
		ButtonPortfolio: "/portfolio",
	}
	return r
}

// HandleMessage parses one inbound message and runs the matching handler.
func (r *Router) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if alias, ok := r.aliases[text]; ok {
		text = alias
	}
	if !strings.HasPrefix(text, "/") {
		r.reply(msg, msgNotACommand)
		return
	}
	fields := strings.Fields(text)
	cmd := strings.ToLower(fields[0])
	// "/add@MyBot" form used in group chats
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	h, ok := r.routes[cmd]
	if !ok {
		r.reply(msg, msgUnknownCommand)
		return
	}
	h(ctx, msg, fields[1:])
}

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message, args []string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, msgStart)
	out.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonAdd),
			tgbotapi.NewKeyboardButton(ButtonPortfolio),
		),
	)
	r.send(out)
}

func (r *Router) handleHelp(ctx context.Context, msg *tgbotapi.Message, args []string) {
	r.reply(msg, msgHelp)
}

func (r *Router) handleAdd(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) != 3 {
		r.reply(msg, msgAddUsage)
		return
	}
	ticker := args[0]
	qty, err := decimal.NewFromString(args[1])
	if err != nil {
		r.reply(msg, msgAddNotNumbers)
		return
	}
	price, err := decimal.NewFromString(args[2])
	if err != nil {
		r.reply(msg, msgAddNotNumbers)
		return
	}

	if err := r.store.Upsert(ctx, msg.From.ID, ticker, qty, price); err != nil {
		r.log.Errorf("upsert holding failed: %v", err)
		r.reply(msg, msgStorageFailure)
		return
	}
	r.reply(msg, fmt.Sprintf("Added: %s %s @ %s", strings.ToUpper(ticker), qty.String(), price.String()))
}

func (r *Router) handlePortfolio(ctx context.Context, msg *tgbotapi.Message, args []string) {
	holdings, err := r.store.List(ctx, msg.From.ID)
	if err != nil {
		r.log.Errorf("list holdings failed: %v", err)
		r.reply(msg, msgStorageFailure)
		return
	}
	if len(holdings) == 0 {
		r.reply(msg, msgEmptyPortfolio)
		return
	}

	priced := make([]portfolio.PricedHolding, 0, len(holdings))
	for _, h := range holdings {
		price, err := r.quotes.GetLastClose(ctx, h.Ticker)
		if err != nil {
			// unknown price counts as zero, the report still renders
			r.log.Warnf("quote fetch for %s failed: %v", h.Ticker, err)
			priced = append(priced, portfolio.PricedHolding{Holding: h})
			continue
		}
		priced = append(priced, portfolio.PricedHolding{Holding: h, Price: price, HasPrice: true})
	}

	r.reply(msg, portfolio.Compute(priced).Render())
}

func (r *Router) reply(msg *tgbotapi.Message, text string) {
	r.send(tgbotapi.NewMessage(msg.Chat.ID, text))
}

func (r *Router) send(c tgbotapi.Chattable) {
	if _, err := r.api.Send(c); err != nil {
		r.log.Errorf("send reply failed: %v", err)
	}
}
