package email

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client sends transactional mail through the Mailgun HTTP API. Failures are
// logged and reported as a bool so callers never block account creation on a
// mail outage.
type Client struct {
	Domain    string
	APIKey    string
	FromEmail string
	HTTP      *http.Client
	Log       zerolog.Logger
}

func (c *Client) SendVerificationEmail(ctx context.Context, to, code string) bool {
	return c.send(ctx, to, "Verify Your Email", "verify-email", map[string]string{
		"code":     code,
		"username": to,
	})
}

func (c *Client) send(ctx context.Context, to, subject, template string, vars map[string]string) bool {
	form := url.Values{}
	form.Set("from", "Atelier <"+c.FromEmail+">")
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("template", template)
	for k, v := range vars {
		form.Set("v:"+k, v)
	}

	endpoint := "https://api.mailgun.net/v3/" + c.Domain + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.Log.Error().Err(err).Msg("email: build request failed")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.APIKey)

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 8 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		c.Log.Error().Err(err).Str("to", to).Msg("email: send failed")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Log.Error().Int("status", resp.StatusCode).Str("to", to).Msg("email: send rejected")
		return false
	}
	return true
}
