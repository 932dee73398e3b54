package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

const eskizBaseURL = "https://notify.eskiz.uz/api"

// SMSService sends OTP codes through the Eskiz gateway. When credentials are
// not configured it logs the code instead of sending, which keeps local
// development working without an account.
type SMSService struct {
	email    string
	password string
	from     string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewSMSService creates a new SMSService.
func NewSMSService(email, password, from string) *SMSService {
	if from == "" {
		from = "4546"
	}
	return &SMSService{email: email, password: password, from: from}
}

type eskizAuthResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// authToken returns a cached gateway token, logging in again when expired.
func (s *SMSService) authToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiresAt) {
		return s.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(eskizBaseURL+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("eskiz auth returned status %d", resp.StatusCode)
	}

	var auth eskizAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", err
	}
	if auth.Data.Token == "" {
		return "", fmt.Errorf("eskiz auth returned empty token")
	}

	s.token = auth.Data.Token
	s.expiresAt = time.Now().Add(25 * 24 * time.Hour)
	return s.token, nil
}

// SendCode delivers a verification code to the phone number.
func (s *SMSService) SendCode(phoneNumber, code string) error {
	if s.email == "" || s.password == "" {
		log.Printf("[SMS] Gateway not configured, code for %s: %s", phoneNumber, code)
		return nil
	}

	token, err := s.authToken()
	if err != nil {
		log.Printf("[SMS] Auth failed: %v", err)
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"mobile_phone": phoneNumber,
		"message":      fmt.Sprintf("Tasdiqlash kodi: %s", code),
		"from":         s.from,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, eskizBaseURL+"/message/sms/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[SMS] Failed to send code: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("eskiz returned status %d", resp.StatusCode)
	}

	return nil
}
