package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"lawyer-search-backend/internal/errorstore"
	"lawyer-search-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Translator renders a message key for a locale.
type Translator interface {
	T(locale, key string) string
}

// Payload is the JSON body pushed to subscribed browsers.
type Payload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WorkerPool fans shown errors out to every push subscription.
type WorkerPool struct {
	size       int
	jobs       chan errorstore.ErrorState
	db         *gorm.DB
	webpush    *webpush.Options
	sender     NotificationSender
	translator Translator
}

// NewWorkerPool creates a new worker pool. translator may be nil.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, translator Translator) *WorkerPool {
	return &WorkerPool{
		size:       size,
		jobs:       make(chan errorstore.ErrorState, size*4),
		db:         db,
		webpush:    webpushOptions,
		sender:     &WebPushSender{},
		translator: translator,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case state := <-wp.jobs:
			wp.sendNotifications(ctx, state)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Notify queues an error for delivery. It never blocks; when the queue is
// full the error is dropped.
func (wp *WorkerPool) Notify(state errorstore.ErrorState) {
	select {
	case wp.jobs <- state:
	default:
		log.Printf("Notification queue full, dropping error %q", state.Message)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan errorstore.ErrorState {
	return wp.jobs
}

func (wp *WorkerPool) sendNotifications(ctx context.Context, state errorstore.ErrorState) {
	if wp.webpush == nil || wp.webpush.VAPIDPrivateKey == "" {
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching push subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending error %q to %d subscriptions", state.Message, len(subscriptions))
	for _, sub := range subscriptions {
		payload, err := json.Marshal(Payload{
			Title:   wp.title(sub.Locale),
			Message: state.Message,
			Details: state.Details,
		})
		if err != nil {
			log.Printf("Error encoding notification payload: %v", err)
			return
		}
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) title(locale string) string {
	if wp.translator == nil {
		return "Error"
	}
	return wp.translator.T(locale, "error.title")
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired subscription.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
