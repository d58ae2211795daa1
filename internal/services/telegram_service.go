package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/example/retailops/internal/utils"
)

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// OrderNotification contains order data for a Telegram notification.
type OrderNotification struct {
	OrderID       string
	TotalAmount   float64
	Status        string
	PaymentMethod string
	PlacedBy      string
}

// NotifyNewOrder notifies the admin chat about a fresh order. Stored fields
// are escaped before being interpolated into the HTML message.
func (s *TelegramService) NotifyNewOrder(n OrderNotification) error {
	payment := n.PaymentMethod
	if payment == "" {
		payment = "not specified"
	}

	text := fmt.Sprintf(
		"<b>New order</b>\nID: <code>%s</code>\nTotal: £%.2f\nStatus: %s\nPayment: %s\nPlaced by: %s",
		utils.EscapeHTML(n.OrderID),
		n.TotalAmount,
		utils.EscapeHTML(n.Status),
		utils.EscapeHTML(payment),
		utils.EscapeHTML(n.PlacedBy),
	)

	if err := s.SendToAdmin(text); err != nil {
		log.Printf("[Telegram] Order notification failed: %v", err)
		return err
	}
	return nil
}
