// Package notify runs the fire-and-forget side effects around state
// transitions: document generation and email delivery. Nothing in here
// may fail past its boundary — the triggering transition has already
// committed.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/metrics"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type Event string

const (
	EventCreated   Event = "created"
	EventValidated Event = "validated"
	EventReleased  Event = "released"
)

// Notification is one unit of outbound work.
type Notification struct {
	Event         Event
	Load          repository.Load
	Recipient     string
	RecipientName string
	ConfirmedBy   string
}

// DocumentGenerator renders the release sheet for a load snapshot.
type DocumentGenerator interface {
	Generate(load *repository.Load, timezone string) ([]byte, error)
}

// EmailSender delivers one message, best-effort.
type EmailSender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Message is the outbound mail shape.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	Content  []byte
}

// Dispatcher fans notifications out to a small worker pool and drains it
// on shutdown. Enqueueing never blocks the caller: when the queue is
// full the notification is dropped and logged.
type Dispatcher struct {
	docs     DocumentGenerator
	mail     EmailSender
	timezone string
	logger   *zap.Logger

	jobs       chan Notification
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	once       sync.Once
}

func NewDispatcher(docs DocumentGenerator, mail EmailSender, timezone string, workerCount int, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		docs:       docs,
		mail:       mail,
		timezone:   timezone,
		logger:     logger,
		jobs:       make(chan Notification, workerCount*16),
		shutdownCh: make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context, workerCount int) {
	d.logger.Info("starting notification dispatcher", zap.Int("workers", workerCount))
	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Dispatch enqueues a notification. The caller's transaction has already
// committed, so failures here never propagate back.
func (d *Dispatcher) Dispatch(n Notification) {
	select {
	case d.jobs <- n:
	default:
		metrics.NotificationFailuresTotal.WithLabelValues("enqueue").Inc()
		d.logger.Warn("notification queue full, dropping",
			zap.String("event", string(n.Event)),
			zap.String("load_id", n.Load.LoadID))
	}
}

// Shutdown stops the workers after draining queued notifications, bounded
// by the context deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.once.Do(func() {
		d.logger.Info("initiating notification dispatcher shutdown")
		close(d.shutdownCh)

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			d.logger.Info("notification dispatcher shutdown completed")
		case <-ctx.Done():
			d.logger.Warn("notification dispatcher shutdown interrupted")
		}
	})
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.jobs:
			d.process(ctx, n)
		case <-d.shutdownCh:
			// Drain whatever is queued, then exit.
			for {
				select {
				case n := <-d.jobs:
					d.process(ctx, n)
				default:
					d.logger.Debug("notification worker exiting", zap.Int("worker", id))
					return
				}
			}
		case <-ctx.Done():
			d.logger.Debug("notification worker context cancelled", zap.Int("worker", id))
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, n Notification) {
	if n.Recipient == "" {
		return
	}

	msg := Message{To: n.Recipient}
	vehicleInfo := vehicleInfo(&n.Load)

	var document []byte
	if d.docs != nil {
		var err error
		document, err = d.docs.Generate(&n.Load, d.timezone)
		if err != nil {
			metrics.NotificationFailuresTotal.WithLabelValues("document").Inc()
			d.logger.Error("failed to generate release document",
				zap.String("load_id", n.Load.LoadID), zap.Error(err))
			// The email still goes out, just without the attachment.
			document = nil
		}
	}
	if document != nil {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename: fmt.Sprintf("DTH_Release_%s.txt", n.Load.LoadID),
			Content:  document,
		})
	}

	switch n.Event {
	case EventCreated:
		msg.Subject = fmt.Sprintf("Load Created: %s - DTH Logistics", n.Load.LoadID)
		msg.Body = fmt.Sprintf("Load %s (%s) has been created. The release sheet is attached.",
			n.Load.LoadID, vehicleInfo)
	case EventValidated:
		msg.Subject = fmt.Sprintf("Load Validated: %s - DTH Logistics", n.Load.LoadID)
		msg.Body = fmt.Sprintf("Load %s (%s) is now VALID and ready for pickup.",
			n.Load.LoadID, vehicleInfo)
	case EventReleased:
		msg.Subject = fmt.Sprintf("Vehicle Released: %s - DTH Logistics", n.Load.LoadID)
		msg.Body = fmt.Sprintf("Hi %s,\n\nLoad %s (%s) was released at %s to %s.",
			n.RecipientName, n.Load.LoadID, vehicleInfo, n.Load.PickupLocation, n.ConfirmedBy)
	default:
		d.logger.Warn("unknown notification event", zap.String("event", string(n.Event)))
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	messageID, err := d.mail.Send(sendCtx, msg)
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("email").Inc()
		d.logger.Error("failed to send notification email",
			zap.String("event", string(n.Event)),
			zap.String("load_id", n.Load.LoadID),
			zap.Error(err))
		return
	}

	d.logger.Debug("notification sent",
		zap.String("event", string(n.Event)),
		zap.String("load_id", n.Load.LoadID),
		zap.String("message_id", messageID))
}

// vehicleInfo mirrors the display string used on the release sheet:
// "year make model", falling back to the VIN suffix.
func vehicleInfo(load *repository.Load) string {
	info := strings.Join(strings.Fields(
		fmt.Sprintf("%s %s %s", load.VehicleYear, load.VehicleMake, load.VehicleModel)), " ")
	if info == "" {
		if load.VinLast6 != "" {
			return load.VinLast6
		}
		return "Vehicle"
	}
	return info
}
