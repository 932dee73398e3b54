package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
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

// SendMessage sends a message to specified chat.
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

// OrderNotification contains order data for Telegram notification.
type OrderNotification struct {
	OrderNumber string
	Kind        string
	WidthMM     int
	HeightMM    int
	TotalPrice  string
	OwnerName   string
	PhoneNumber string
	Location    string
}

// NotifyNewOrder sends notification about a freshly created order detail to
// the admin chat.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	kindText := "Deraza"
	switch order.Kind {
	case "DOOR":
		kindText = "Eshik"
	case "FORTOCHKA":
		kindText = "Fortochka"
	}

	message := fmt.Sprintf(`<b>🪟 YANGI BUYURTMA!</b>
<b>📋 Buyurtma:</b> %s
<b>🔖 Turi:</b> %s
<b>📐 O'lcham:</b> %d x %d mm
<b>💰 Jami:</b> %s
<b>👤 Mijoz:</b> %s
<b>📞 Telefon:</b> %s
<b>📍 Manzil:</b> %s
━━━━━━━━━━━━━━━━━━`,
		order.OrderNumber,
		kindText,
		order.WidthMM,
		order.HeightMM,
		order.TotalPrice,
		order.OwnerName,
		order.PhoneNumber,
		order.Location,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
