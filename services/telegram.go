package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// telegramMessage is the sendMessage payload of the Telegram Bot API
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramService pings admin chats about order activity. Delivery is
// best-effort: failures are logged and never reach the API caller.
type TelegramService struct {
	apiURL  string
	chatIDs []string
	client  *http.Client
}

var Notifier *TelegramService

// InitializeTelegram wires the notifier; with no token it stays nil and
// notifications are silently skipped.
func InitializeTelegram(botToken string, chatIDs []string) {
	if botToken == "" || len(chatIDs) == 0 {
		log.Println("Telegram notifications disabled")
		return
	}

	Notifier = &TelegramService{
		apiURL:  fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken),
		chatIDs: chatIDs,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	log.Printf("Telegram notifications enabled for %d chat(s)", len(chatIDs))
}

// NotifyNewOrder announces a freshly created order to every admin chat
func (ts *TelegramService) NotifyNewOrder(orderID int64, customerName, serviceName string) {
	text := fmt.Sprintf("New order #%d\nCustomer: %s\nService: %s", orderID, customerName, serviceName)
	ts.broadcast(text)
}

// NotifyStatusChange announces an order status transition
func (ts *TelegramService) NotifyStatusChange(orderID int64, customerName, oldStatus, newStatus string) {
	text := fmt.Sprintf("Order #%d (%s) moved from %s to %s", orderID, customerName, oldStatus, newStatus)
	ts.broadcast(text)
}

func (ts *TelegramService) broadcast(text string) {
	for _, chatID := range ts.chatIDs {
		if err := ts.send(chatID, text); err != nil {
			log.Printf("Failed to send Telegram notification to %s: %v", chatID, err)
		}
	}
}

func (ts *TelegramService) send(chatID, text string) error {
	payload, err := json.Marshal(telegramMessage{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	resp, err := ts.client.Post(ts.apiURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned %s", resp.Status)
	}
	return nil
}
