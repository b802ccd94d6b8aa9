package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

// syncMirror upserts the timeline mirror of src. Failures are logged and
// counted, never returned.
func syncMirror(ctx context.Context, tl TimelineMirror, logger *logrus.Logger, sourceType, provider, eventID string, src any) {
	if tl == nil {
		return
	}
	if _, err := tl.Upsert(ctx, sourceType, src); err != nil {
		helpers.TimelineSyncFailures.WithLabelValues(provider, "upsert").Inc()
		logger.WithError(err).WithFields(logrus.Fields{
			"provider":          provider,
			"provider_event_id": eventID,
		}).Warn("timeline mirror upsert failed")
	}
}

func dropMirror(ctx context.Context, tl TimelineMirror, logger *logrus.Logger, provider, eventID string) {
	if tl == nil {
		return
	}
	if err := tl.RemoveMirror(ctx, provider, eventID); err != nil {
		helpers.TimelineSyncFailures.WithLabelValues(provider, "remove").Inc()
		logger.WithError(err).WithFields(logrus.Fields{
			"provider":          provider,
			"provider_event_id": eventID,
		}).Warn("timeline mirror removal failed")
	}
}
