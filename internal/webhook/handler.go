package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	pkgLog "scm-event-dispatcher/pkg/log"
	pkgResponse "scm-event-dispatcher/pkg/response"
)

// HandleGitHubWebhook godoc
// @Summary     Receive a GitHub webhook delivery
// @Description Verifies and classifies create, delete and push events and schedules them for delayed delivery. Other events are acknowledged and ignored.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true  "Event name"
// @Param       X-GitHub-Delivery   header string false "Delivery GUID"
// @Param       X-Hub-Signature-256 header string true  "HMAC-SHA256 of the body"
// @Success     200 {object} pkgResponse.Resp "Accepted, ignored or pong"
// @Failure     400 {object} pkgResponse.Resp "Undecodable payload"
// @Failure     401 {object} pkgResponse.Resp "Invalid signature"
// @Failure     403 {object} pkgResponse.Resp "Origin not allowed"
// @Failure     429 {object} pkgResponse.Resp "Rate limited"
// @Router      /webhook/github [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	// ClientIP only honours forwarding headers from trusted proxies.
	origin := c.ClientIP()
	deliveryID := c.GetHeader(HeaderDelivery)
	if deliveryID == "" {
		deliveryID = h.newID()
	}
	ctx := context.WithValue(c.Request.Context(), pkgLog.DeliveryIDKey, deliveryID)
	ctx = context.WithValue(ctx, pkgLog.OriginKey, origin)

	if err := h.security.ValidateOrigin(origin); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	if err := h.security.CheckRateLimit(origin); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: failed to read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	err = h.security.ValidateSignature(body, c.GetHeader(HeaderSignature256), c.GetHeader(HeaderSignature))
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	eventType := c.GetHeader(HeaderEvent)
	if eventType == eventPing {
		h.l.Infof(ctx, "Received ping from %s", origin)
		pkgResponse.OK(c, gin.H{"status": "pong", "delivery_id": deliveryID})
		return
	}

	kind, ok := supportedEvents[eventType]
	if !ok {
		h.l.Debugf(ctx, "Unsupported GitHub event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	n := model.Notification{
		Source:     model.SourceGitHub,
		Kind:       kind,
		Origin:     origin,
		DeliveryID: deliveryID,
		ReceivedAt: h.now(),
		Payload:    body,
	}
	if err := h.headEventUC.Dispatch(ctx, n); err != nil {
		h.mapDispatchError(c, err)
		return
	}

	pkgResponse.OK(c, gin.H{"status": "accepted", "delivery_id": deliveryID})
}

func (h *Handler) mapDispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, headevent.ErrDecodePayload),
		errors.Is(err, headevent.ErrMalformedRepository),
		errors.Is(err, headevent.ErrMissingRepository),
		errors.Is(err, headevent.ErrUnsupportedKind),
		errors.Is(err, headevent.ErrUnsupportedSource):
		pkgResponse.Error(c, err, nil)
	default:
		pkgResponse.InternalError(c, err)
	}
}

// ListDeliveries godoc
// @Summary     List recent deliveries
// @Description Returns the most recent re-scan requests handed to listeners, newest first.
// @Tags        Webhook
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Max entries (default 50, max 500)"
// @Success     200 {object} listDeliveriesResp
// @Failure     400 {object} pkgResponse.Resp "Bad Request"
// @Failure     401 {object} pkgResponse.Resp "Unauthorized"
// @Router      /api/v1/deliveries [GET]
func (h *Handler) ListDeliveries(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			pkgResponse.Error(c, errInvalidLimit, nil)
			return
		}
		limit = min(v, maxListLimit)
	}

	if h.deliveries == nil {
		pkgResponse.OK(c, listDeliveriesResp{Deliveries: []deliveryResp{}})
		return
	}
	pkgResponse.OK(c, newListDeliveriesResp(h.deliveries.Recent(limit)))
}
