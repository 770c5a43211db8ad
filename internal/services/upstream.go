package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
)

// callUpstream sends req with the session's upstream cookies, stores any
// cookies the backend sets, and decodes the payload into out.
func callUpstream(ctx context.Context, api apiclient.Doer, sess *models.Session, req apiclient.Request, out interface{}) error {
	resp, err := doUpstream(ctx, api, sess, req)
	if err != nil {
		return err
	}

	return apiclient.DecodeData(resp, out)
}

// doUpstream is callUpstream for callers that decode the body themselves.
func doUpstream(ctx context.Context, api apiclient.Doer, sess *models.Session, req apiclient.Request) (*apiclient.Response, error) {
	if sess != nil {
		req.Cookies = sess.UpstreamCookies
	}

	resp, err := api.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if sess != nil {
		sess.MergeCookies(resp.Cookies, time.Now())
	}

	if err := apiclient.DecodeData(resp, nil); err != nil {
		return nil, err
	}
	return resp, nil
}

// publishActivity never fails the caller.
func publishActivity(ctx context.Context, publisher messaging.ActivityPublisher, log *logrus.Logger, event messaging.ActivityEvent) {
	if publisher == nil {
		return
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := publisher.Publish(pubCtx, event); err != nil {
			log.WithFields(logrus.Fields{"type": event.Type, "error": err}).Warn("Failed to publish activity event")
		}
	}()
}
