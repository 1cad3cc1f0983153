// Package payment handles Telegram Stars payments: invoice creation, the
// pre-checkout handshake and applying confirmed charges.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// Fulfiller applies a confirmed payment. applied is false when the charge id
// was already processed.
type Fulfiller interface {
	ApplyPremium(ctx context.Context, c Confirmation) (applied bool, err error)
}

// Service defines payment operations
type Service interface {
	CreateInvoice(ctx context.Context, playerID, itemID string) (string, error)
	HandleUpdate(ctx context.Context, update Update) error
	IsApplied(ctx context.Context, playerID, chargeID string) (bool, error)
}

type service struct {
	bot       Bot
	catalog   *catalog.Catalog
	fulfiller Fulfiller
	purchases repository.Purchase
}

// NewService creates a payment service. A nil bot disables invoice creation.
func NewService(bot Bot, cat *catalog.Catalog, fulfiller Fulfiller, purchases repository.Purchase) Service {
	return &service{
		bot:       bot,
		catalog:   cat,
		fulfiller: fulfiller,
		purchases: purchases,
	}
}

// CreateInvoice builds a Stars invoice link for a premium item or subscription tier
func (s *service) CreateInvoice(ctx context.Context, playerID, itemID string) (string, error) {
	if s.bot == nil {
		return "", ErrPaymentsDisabled
	}
	price, ok := s.catalog.StarsPrice(itemID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}

	payload, err := json.Marshal(InvoicePayload{ItemID: itemID, UserID: json.Number(playerID)})
	if err != nil {
		return "", fmt.Errorf("failed to encode invoice payload: %w", err)
	}

	title := truncate(invoiceTitle(itemID), maxTitleLength)
	link, err := s.bot.CreateInvoiceLink(ctx, Invoice{
		Title:       title,
		Description: truncate(fmt.Sprintf("%s for Fairy Grove", title), maxDescriptionLength),
		Payload:     string(payload),
		Currency:    domain.CurrencyStars,
		Prices:      []LabeledPrice{{Label: title, Amount: price}},
	})
	if err != nil {
		return "", err
	}

	logger.FromContext(ctx).Info(LogMsgInvoiceCreated, "player_id", playerID, "item_id", itemID, "stars", price)
	return link, nil
}

// HandleUpdate processes one webhook update. Updates unrelated to payments are ignored.
func (s *service) HandleUpdate(ctx context.Context, update Update) error {
	switch {
	case update.PreCheckoutQuery != nil:
		return s.answerPreCheckout(ctx, update.PreCheckoutQuery)
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		return s.confirm(ctx, update.Message)
	default:
		return nil
	}
}

func (s *service) answerPreCheckout(ctx context.Context, q *PreCheckoutQuery) error {
	if s.bot == nil {
		return ErrPaymentsDisabled
	}
	err := s.validateCharge(q.InvoicePayload, q.Currency, q.TotalAmount)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPaymentIgnored, "query_id", q.ID, "error", err)
	}
	if answerErr := s.bot.AnswerPreCheckoutQuery(ctx, q.ID, err == nil, preCheckoutRejection); answerErr != nil {
		return answerErr
	}
	logger.FromContext(ctx).Info(LogMsgPreCheckoutAnswered, "query_id", q.ID, "ok", err == nil)
	return nil
}

func (s *service) confirm(ctx context.Context, msg *Message) error {
	log := logger.FromContext(ctx)
	sp := msg.SuccessfulPayment

	payload, err := ParseInvoicePayload(sp.InvoicePayload)
	if err != nil {
		log.Warn(LogMsgPaymentIgnored, "charge_id", sp.TelegramPaymentChargeID, "error", err)
		return nil
	}

	playerID := payload.UserID.String()
	if playerID == "" && msg.From != nil {
		playerID = strconv.FormatInt(msg.From.ID, 10)
	}
	if playerID == "" || sp.TelegramPaymentChargeID == "" {
		log.Warn(LogMsgPaymentIgnored, "reason", "missing player or charge id")
		return nil
	}

	applied, err := s.fulfiller.ApplyPremium(ctx, Confirmation{
		PlayerID: playerID,
		ItemID:   payload.ItemID,
		ChargeID: sp.TelegramPaymentChargeID,
		Amount:   sp.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("apply payment %s: %w", sp.TelegramPaymentChargeID, err)
	}
	if !applied {
		log.Info(LogMsgPaymentDuplicate, "charge_id", sp.TelegramPaymentChargeID)
		return nil
	}
	log.Info(LogMsgPaymentReceived, "player_id", playerID, "item_id", payload.ItemID, "stars", sp.TotalAmount)
	return nil
}

// IsApplied reports whether the player's charge has been recorded
func (s *service) IsApplied(ctx context.Context, playerID, chargeID string) (bool, error) {
	purchases, err := s.purchases.ListPurchases(ctx, playerID)
	if err != nil {
		return false, err
	}
	for _, p := range purchases {
		if p.ChargeID == chargeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) validateCharge(rawPayload, currency string, amount int64) error {
	payload, err := ParseInvoicePayload(rawPayload)
	if err != nil {
		return err
	}
	if currency != domain.CurrencyStars {
		return errors.New(ErrMsgWrongCurrency + ": " + currency)
	}
	price, ok := s.catalog.StarsPrice(payload.ItemID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownItem, payload.ItemID)
	}
	if price != amount {
		return fmt.Errorf("%w: %s costs %d, charged %d", ErrPriceMismatch, payload.ItemID, price, amount)
	}
	return nil
}

func invoiceTitle(itemID string) string {
	if domain.IsSubscriptionTier(itemID) {
		return titleCase(itemID) + " subscription"
	}
	return titleCase(humanize(itemID))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
