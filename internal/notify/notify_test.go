package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
	"github.com/linemk/shop-online-api/internal/notify"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var tokenRe = regexp.MustCompile(`token=([^"&]+)`)

func extractToken(t *testing.T, body string) string {
	t.Helper()
	m := tokenRe.FindStringSubmatch(body)
	require.Len(t, m, 2, "token not found in %q", body)
	token, err := url.QueryUnescape(m[1])
	require.NoError(t, err)
	return token
}

func TestSendActivation(t *testing.T) {
	sender := &fakeSender{}
	d := notify.NewDispatcher(discard(), sender, "secret", "shop.local")

	res := d.SendActivation(context.Background(), &models.User{ID: 7, Email: "a@example.com"})
	require.True(t, res.Delivered)
	require.NoError(t, res.Err)
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	assert.Equal(t, "a@example.com", mail.to)
	assert.Equal(t, "Welcome to our shop!", mail.subject)
	assert.Contains(t, mail.body, "http://shop.local/verification/?token=")

	token := extractToken(t, mail.body)
	sub, err := security.ParseSubject(token, security.AudienceActivation, "secret")
	require.NoError(t, err)
	assert.Equal(t, "7", sub)

	_, err = security.ParseSubject(token, security.AudienceAccess, "secret")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestSendNewsletterActivation_TokenCarriesEmail(t *testing.T) {
	sender := &fakeSender{}
	d := notify.NewDispatcher(discard(), sender, "secret", "shop.local")

	res := d.SendNewsletterActivation(context.Background(), "news@example.com")
	require.True(t, res.Delivered)

	body := sender.sent[0].body
	assert.Contains(t, body, "/newsletter/verify/?token=")
	assert.Contains(t, body, "/newsletter/unsubscribe/?token=")

	sub, err := security.ParseSubject(extractToken(t, body), security.AudienceNewsletter, "secret")
	require.NoError(t, err)
	assert.Equal(t, "news@example.com", sub)
}

func TestSendOrderConfirmation(t *testing.T) {
	sender := &fakeSender{}
	d := notify.NewDispatcher(discard(), sender, "secret", "shop.local")

	order := &models.Order{ID: 3, TotalPaid: decimal.RequireFromString("25.5")}
	res := d.SendOrderConfirmation(context.Background(), "a@example.com", order)
	require.True(t, res.Delivered)
	assert.Contains(t, sender.sent[0].body, "25.50$")
	assert.Contains(t, sender.sent[0].body, "http://shop.local/orders/3")
}

func TestSendStatusUpdated(t *testing.T) {
	sender := &fakeSender{}
	d := notify.NewDispatcher(discard(), sender, "secret", "shop.local")

	res := d.SendStatusUpdated(context.Background(), "a@example.com", &models.ShopOrder{OrderID: 5, Status: models.OrderStatusShipped})
	require.True(t, res.Delivered)
	assert.True(t, strings.HasSuffix(sender.sent[0].subject, "shipped"))
}

func TestSend_FailureIsReportedNotPanicking(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}

	var observed []bool
	d := notify.NewDispatcher(discard(), sender, "secret", "shop.local",
		notify.WithObserver(func(kind string, delivered bool) {
			assert.Equal(t, notify.KindPasswordReset, kind)
			observed = append(observed, delivered)
		}))

	res := d.SendPasswordReset(context.Background(), &models.User{ID: 1, Email: "a@example.com"})
	assert.False(t, res.Delivered)
	assert.Error(t, res.Err)
	assert.Equal(t, []bool{false}, observed)
}

func TestSendGridSender_MissingAPIKey(t *testing.T) {
	d := notify.NewDispatcher(discard(), notify.NewSendGridSender("", "from@example.com"), "secret", "shop.local")

	res := d.SendActivation(context.Background(), &models.User{ID: 1, Email: "a@example.com"})
	assert.False(t, res.Delivered)
	assert.ErrorIs(t, res.Err, notify.ErrMissingAPIKey)
}

func TestSend_EmptySecretFails(t *testing.T) {
	sender := &fakeSender{}
	d := notify.NewDispatcher(discard(), sender, "", "shop.local")

	res := d.SendActivation(context.Background(), &models.User{ID: 1, Email: "a@example.com"})
	assert.False(t, res.Delivered)
	assert.ErrorIs(t, res.Err, security.ErrEmptySecret)
	assert.Empty(t, sender.sent)
}
