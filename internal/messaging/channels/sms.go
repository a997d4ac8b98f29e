// Package channels chứa các kênh gửi tin outbound (sms, email).
package channels

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
)

var smsClient = &http.Client{Timeout: 10 * time.Second}

// SendSMS gửi SMS qua API kiểu Twilio: form POST với basic auth.
// Provider trả về non-2xx thì coi là lỗi gửi (sẽ retry ở processor).
func SendSMS(ctx context.Context, cfg *config.Configuration, to, body string) error {
	if cfg.SMSAccountSID == "" || cfg.SMSAuthToken == "" {
		return fmt.Errorf("sms channel chưa được cấu hình")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(cfg.SMSAPIBaseURL, "/"), cfg.SMSAccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", cfg.SMSFromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(cfg.SMSAccountSID, cfg.SMSAuthToken)

	resp, err := smsClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
