package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
	"github.com/iliyamo/gotanda-lunch/internal/review"
)

// Publisher hands accepted reviews to the review writer over RabbitMQ.  It
// implements review.Sink.  A connection is dialed per submission; review
// traffic is low and this keeps the publisher free of reconnect state.
type Publisher struct {
	url   string
	now   func() time.Time
	newID func() string
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string) *Publisher {
	return &Publisher{
		url:   url,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// NewReviewSubmittedEvent builds the message for an accepted review.
func NewReviewSubmittedEvent(a review.Accepted, id string, at time.Time) ReviewSubmittedEvent {
	ev := ReviewSubmittedEvent{
		SubmissionID: id,
		RestaurantID: a.RestaurantID,
		Rating:       a.Rating,
		Title:        a.Title,
		Content:      a.Content,
		SubmittedAt:  at.UTC().Format(time.RFC3339),
	}
	if a.VisitDate != nil {
		d := a.VisitDate.Format(review.DateLayout)
		ev.VisitDate = &d
	}
	return ev
}

// Submit publishes a ReviewSubmittedEvent to the durable review.submitted
// queue and returns the submission id.  Messages are marked persistent.
func (p *Publisher) Submit(ctx context.Context, a review.Accepted) (string, error) {
	log := logging.FromContext(ctx)
	ev := NewReviewSubmittedEvent(a, p.newID(), p.now())
	body, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: dial failed")
		return "", err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return "", err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		ReviewSubmittedQueue, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return "", err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.SubmissionID,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		ReviewSubmittedQueue, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		log.Error().Err(err).Msg("rabbitmq: publish failed")
		return "", err
	}
	log.Info().
		Str("submission_id", ev.SubmissionID).
		Str("restaurant_id", ev.RestaurantID).
		Msg("review submitted")
	return ev.SubmissionID, nil
}
