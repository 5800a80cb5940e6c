package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/mailer"
	"github.com/logysma/logysma-backend/pkg/metrics"
)

const (
	channelInApp    = "in_app"
	channelRealtime = "realtime"
	channelEmail    = "email"

	// EventNotification is the realtime event name pushed to user rooms.
	EventNotification = "new_notification"
)

// RealtimePublisher pushes an event to every live connection of one user.
type RealtimePublisher interface {
	PublishToUser(userID uuid.UUID, event string, payload any) error
}

// DispatchParams describes one notification to fan out.
type DispatchParams struct {
	UserID     uuid.UUID
	Kind       enums.NotificationKind
	Message    string
	CoverPhoto *string
}

// Dispatcher fans a notification out to its channels. The stored row is the
// source of truth: realtime and email failures are logged and never bubble up
// to the action that triggered the notification.
type Dispatcher interface {
	Dispatch(ctx context.Context, params DispatchParams) (*models.Notification, error)
	DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error)
}

// DispatcherParams groups dependencies for the dispatcher.
type DispatcherParams struct {
	Repo     Repository
	Realtime RealtimePublisher
	Mail     mailer.Sender
	Cache    CounterCache
	Metrics  *metrics.ListingMetrics
	Log      *logger.Logger
	SiteURL  string
}

type dispatcher struct {
	repo     Repository
	realtime RealtimePublisher
	mail     mailer.Sender
	cache    CounterCache
	metrics  *metrics.ListingMetrics
	log      *logger.Logger
	siteURL  string
}

// NewDispatcher wires the notification fan-out.
func NewDispatcher(params DispatcherParams) (Dispatcher, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &dispatcher{
		repo:     params.Repo,
		realtime: params.Realtime,
		mail:     params.Mail,
		cache:    params.Cache,
		metrics:  params.Metrics,
		log:      params.Log,
		siteURL:  params.SiteURL,
	}, nil
}

// Dispatch persists the in-app copy and pushes it to live connections.
func (d *dispatcher) Dispatch(ctx context.Context, params DispatchParams) (*models.Notification, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient id required")
	}
	if params.Message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification message required")
	}
	kind := params.Kind
	if kind == "" {
		kind = enums.NotificationKindInfo
	}

	notification := &models.Notification{
		UserID:     params.UserID,
		Message:    params.Message,
		Kind:       kind,
		CoverPhoto: params.CoverPhoto,
	}
	if err := d.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store notification")
	}
	d.metrics.IncDispatched(channelInApp)
	d.invalidateCounter(ctx, params.UserID)

	if err := d.publish(notification); err != nil {
		d.logSideChannelFailure(ctx, notification.UserID, err)
	}
	return notification, nil
}

// DispatchAlertMatch notifies a user whose saved search matched a new
// listing: in-app row, realtime push and an email when mail is configured.
func (d *dispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	var cover *string
	if len(property.Photos) > 0 {
		cover = &property.Photos[0].PhotoURL
	}

	notification, err := d.Dispatch(ctx, DispatchParams{
		UserID:     recipient.ID,
		Kind:       enums.NotificationKindInfo,
		Message:    fmt.Sprintf("Nouvelle propriété correspondant à vos critères : %s", property.Title),
		CoverPhoto: cover,
	})
	if err != nil {
		return nil, err
	}

	if d.mail != nil && recipient.Email != "" {
		subject := "Nouvelle propriété correspondant à vos critères"
		if err := d.mail.Send(ctx, recipient.Email, subject, alertMatchBody(d.siteURL, property)); err != nil {
			d.logSideChannelFailure(ctx, recipient.ID, multierr.Append(nil, fmt.Errorf("alert email: %w", err)))
		} else {
			d.metrics.IncDispatched(channelEmail)
		}
	}
	return notification, nil
}

func (d *dispatcher) publish(notification *models.Notification) error {
	if d.realtime == nil {
		return nil
	}
	if err := d.realtime.PublishToUser(notification.UserID, EventNotification, notification); err != nil {
		return fmt.Errorf("realtime publish: %w", err)
	}
	d.metrics.IncDispatched(channelRealtime)
	return nil
}

func (d *dispatcher) logSideChannelFailure(ctx context.Context, userID uuid.UUID, err error) {
	if d.log == nil || err == nil {
		return
	}
	scoped := d.log.WithUserID(ctx, userID.String())
	for _, cause := range multierr.Errors(err) {
		d.log.Warn(d.log.WithField(scoped, "error", cause.Error()), "notification side channel failed")
	}
}

func (d *dispatcher) invalidateCounter(ctx context.Context, userID uuid.UUID) {
	if d.cache == nil {
		return
	}
	key := d.cache.CounterKey(unreadCounterScope, userID.String())
	if err := d.cache.Del(ctx, key); err != nil && d.log != nil {
		d.log.Warn(d.log.WithField(ctx, "error", err.Error()), "unread counter invalidation failed")
	}
}

func alertMatchBody(siteURL string, property models.Property) string {
	link := fmt.Sprintf("%s/properties/%s", siteURL, property.ID)
	description := ""
	if property.Description != nil {
		description = *property.Description
	}
	return fmt.Sprintf(`<h2>Une nouvelle propriété correspond à vos critères !</h2>
<p><strong>Titre:</strong> %s</p>
<p><strong>Prix:</strong> %s</p>
<p><strong>Adresse:</strong> %s</p>
<p><strong>Description:</strong> %s</p>
<p><a href="%s">Voir la propriété</a></p>`,
		property.Title, property.Price.StringFixed(0), property.Address, description, link)
}
