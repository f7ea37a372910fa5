// Package notify отправляет транзакционные письма. Доставка best-effort:
// каждая отправка возвращает Result, ошибка наружу не пробрасывается.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
)

const (
	ActivationTokenTTL = 5 * time.Minute
	ResetTokenTTL      = 12 * time.Hour
	NewsletterTokenTTL = 12 * time.Hour
)

// виды писем, они же метка для метрик
const (
	KindActivation           = "activation"
	KindPasswordReset        = "password_reset"
	KindNewsletterActivation = "newsletter_activation"
	KindStatusUpdated        = "status_updated"
	KindOrderConfirmation    = "order_confirmation"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Result - исход одной отправки
type Result struct {
	Delivered bool
	Err       error
}

// Observer получает исход каждой отправки (например, для метрик)
type Observer func(kind string, delivered bool)

type Dispatcher struct {
	log     *slog.Logger
	sender  Sender
	secret  string
	baseURL string
	observe Observer
}

type Option func(*Dispatcher)

func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observe = o
	}
}

// NewDispatcher создаёт диспетчер. host - адрес сервиса для ссылок в письмах (без схемы).
func NewDispatcher(log *slog.Logger, sender Sender, secret, host string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		log:     log,
		sender:  sender,
		secret:  secret,
		baseURL: "http://" + host,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) SendActivation(ctx context.Context, user *models.User) Result {
	token, err := security.NewToken(strconv.FormatInt(user.ID, 10), security.AudienceActivation, ActivationTokenTTL, d.secret)
	if err != nil {
		return d.fail(KindActivation, err)
	}
	return d.send(ctx, KindActivation, user.Email, "Welcome to our shop!", "activation.html", map[string]string{
		"Link": d.link("/verification/", token),
	})
}

func (d *Dispatcher) SendPasswordReset(ctx context.Context, user *models.User) Result {
	token, err := security.NewToken(strconv.FormatInt(user.ID, 10), security.AudiencePasswordReset, ResetTokenTTL, d.secret)
	if err != nil {
		return d.fail(KindPasswordReset, err)
	}
	return d.send(ctx, KindPasswordReset, user.Email, "Reset Your Password", "password_reset.html", map[string]string{
		"Link": d.link("/reset-password/verify/", token),
	})
}

// SendNewsletterActivation - в токене email подписчика, им же подтверждается и отписка
func (d *Dispatcher) SendNewsletterActivation(ctx context.Context, email string) Result {
	token, err := security.NewToken(email, security.AudienceNewsletter, NewsletterTokenTTL, d.secret)
	if err != nil {
		return d.fail(KindNewsletterActivation, err)
	}
	return d.send(ctx, KindNewsletterActivation, email, "Activate Your Subscription", "newsletter_activation.html", map[string]string{
		"Link":            d.link("/newsletter/verify/", token),
		"UnsubscribeLink": d.link("/newsletter/unsubscribe/", token),
	})
}

func (d *Dispatcher) SendStatusUpdated(ctx context.Context, email string, so *models.ShopOrder) Result {
	subject := "Your order status has been updated, now it is " + string(so.Status)
	return d.send(ctx, KindStatusUpdated, email, subject, "status_updated.html", map[string]string{
		"Status": string(so.Status),
		"Link":   fmt.Sprintf("%s/orders/%d", d.baseURL, so.OrderID),
	})
}

func (d *Dispatcher) SendOrderConfirmation(ctx context.Context, email string, order *models.Order) Result {
	return d.send(ctx, KindOrderConfirmation, email, "Your order has been placed", "order_confirmation.html", map[string]string{
		"Total": order.TotalPaid.StringFixed(2),
		"Link":  fmt.Sprintf("%s/orders/%d", d.baseURL, order.ID),
	})
}

func (d *Dispatcher) link(path, token string) string {
	return d.baseURL + path + "?token=" + url.QueryEscape(token)
}

func (d *Dispatcher) send(ctx context.Context, kind, to, subject, tmpl string, data any) Result {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return d.fail(kind, fmt.Errorf("render %s: %w", tmpl, err))
	}

	if err := d.sender.Send(ctx, to, subject, body.String()); err != nil {
		return d.fail(kind, err)
	}

	d.log.Debug("email sent", slog.String("kind", kind), slog.String("to", to))
	d.record(kind, true)
	return Result{Delivered: true}
}

func (d *Dispatcher) fail(kind string, err error) Result {
	d.record(kind, false)
	return Result{Err: fmt.Errorf("notify %s: %w", kind, err)}
}

func (d *Dispatcher) record(kind string, delivered bool) {
	if d.observe != nil {
		d.observe(kind, delivered)
	}
}
