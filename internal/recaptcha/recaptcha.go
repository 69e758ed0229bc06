package recaptcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Verifier forwards client-supplied captcha tokens to the external
// verification service. This application only relays the token; the
// external service owns the decision, and its outcome is recorded but
// never blocks the request flow.
type Verifier struct {
	secret   string
	endpoint string
	client   *http.Client
	log      *zap.SugaredLogger
}

func NewVerifier(secret, endpoint string, log *zap.SugaredLogger) *Verifier {
	return &Verifier{
		secret:   secret,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 3 * time.Second},
		log:      log,
	}
}

// Forward relays the token. A missing secret disables forwarding, and
// failures are logged only.
func (v *Verifier) Forward(ctx context.Context, token, remoteIP string) {
	if v.secret == "" || token == "" {
		return
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
		"remoteip": {remoteIP},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		v.log.Errorw("captcha request build failed", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Warnw("captcha verification unreachable", "err", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool    `json:"success"`
		Score   float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.log.Warnw("captcha verification response unreadable", "err", err)
		return
	}

	v.log.Infow("captcha verified", "success", result.Success, "score", result.Score)
}
