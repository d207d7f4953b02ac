package notifications

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wildtrack-backend/internal/bookings"
	"wildtrack-backend/internal/messages"
)

const sendTimeout = 15 * time.Second

// Dispatcher sends notification e-mails in the background. Delivery
// failures are logged and never reach the caller.
type Dispatcher struct {
	sender      Sender
	notifyEmail string
	log         *zap.Logger
	wg          sync.WaitGroup
}

// NewDispatcher returns nil when sender is nil, which callers treat as
// "notifications disabled".
func NewDispatcher(sender Sender, notifyEmail string, log *zap.Logger) *Dispatcher {
	if sender == nil {
		return nil
	}
	return &Dispatcher{
		sender:      sender,
		notifyEmail: notifyEmail,
		log:         log,
	}
}

func (d *Dispatcher) BookingReceived(b bookings.Booking) {
	if d == nil {
		return
	}
	d.run("booking confirmation", b.ID, func(ctx context.Context) (string, error) {
		html, err := buildBookingConfirmationHTML(b)
		if err != nil {
			return "", err
		}
		return d.sender.Send(ctx, Mail{
			To:      Address{Email: b.Email, Name: b.Name},
			Subject: "Your UmZulu Wildtrack booking enquiry - " + b.SafariPackage,
			HTML:    html,
			Tags:    []string{"booking-confirmation"},
		})
	})

	if d.notifyEmail == "" {
		return
	}
	d.run("booking notice", b.ID, func(ctx context.Context) (string, error) {
		html, err := buildBookingNoticeHTML(b)
		if err != nil {
			return "", err
		}
		return d.sender.Send(ctx, Mail{
			To:      Address{Email: d.notifyEmail},
			ReplyTo: &Address{Email: b.Email, Name: b.Name},
			Subject: "New booking enquiry - " + b.SafariPackage,
			HTML:    html,
			Tags:    []string{"booking-notice"},
		})
	})
}

func (d *Dispatcher) MessageReceived(m messages.Message) {
	if d == nil || d.notifyEmail == "" {
		return
	}
	d.run("contact notice", m.ID, func(ctx context.Context) (string, error) {
		html, err := buildContactNotificationHTML(m)
		if err != nil {
			return "", err
		}
		return d.sender.Send(ctx, Mail{
			To:      Address{Email: d.notifyEmail},
			ReplyTo: &Address{Email: m.Email, Name: m.Name},
			Subject: "New contact message - " + m.Subject,
			HTML:    html,
			Tags:    []string{"contact-" + m.Category},
		})
	})
}

// Wait blocks until queued sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) {
	if d == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) run(kind, refID string, send func(ctx context.Context) (string, error)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		id, err := send(ctx)
		if err != nil {
			d.log.Warn("notifications: send failed",
				zap.String("kind", kind),
				zap.String("ref_id", refID),
				zap.Error(err),
			)
			return
		}
		d.log.Info("notifications: sent",
			zap.String("kind", kind),
			zap.String("ref_id", refID),
			zap.String("message_id", id),
		)
	}()
}
