package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/pkg/response"
)

var errInvalidMaxTagAge = errors.New("filter.max_tag_age must be a Go duration such as 72h")

// ListSources godoc
// @Summary     List sources
// @Description Returns every registered repository.
// @Tags        Registry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} listSourcesResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sources [GET]
func (h *handler) ListSources(c *gin.Context) {
	ctx := c.Request.Context()

	srcs, err := h.store.ListSources(ctx)
	if err != nil {
		h.l.Errorf(ctx, "store.ListSources: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListSourcesResp(srcs))
}

// SaveSource godoc
// @Summary     Create or replace a source
// @Description Registers a repository under the given id. An existing source with the same id is replaced.
// @Tags        Registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string        true "Source ID"
// @Param       body body saveSourceReq true "Source definition"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/sources/{id} [PUT]
func (h *handler) SaveSource(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSaveSourceReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.store.SaveSource(ctx, spec); err != nil {
		h.l.Errorf(ctx, "store.SaveSource: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, gin.H{"id": spec.ID})
}

// DeleteSource godoc
// @Summary     Delete a source
// @Description Removes a repository. Events already scheduled for it are no longer delivered to it.
// @Tags        Registry
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Source ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sources/{id} [DELETE]
func (h *handler) DeleteSource(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.DeleteSource(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "store.DeleteSource: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ListNavigators godoc
// @Summary     List navigators
// @Description Returns every registered owner.
// @Tags        Registry
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} listNavigatorsResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/navigators [GET]
func (h *handler) ListNavigators(c *gin.Context) {
	ctx := c.Request.Context()

	navs, err := h.store.ListNavigators(ctx)
	if err != nil {
		h.l.Errorf(ctx, "store.ListNavigators: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListNavigatorsResp(navs))
}

// SaveNavigator godoc
// @Summary     Create or replace a navigator
// @Description Registers an owner under the given id.
// @Tags        Registry
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string           true "Navigator ID"
// @Param       body body saveNavigatorReq true "Navigator definition"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/navigators/{id} [PUT]
func (h *handler) SaveNavigator(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSaveNavigatorReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	spec := req.toSpec()
	if err := h.store.SaveNavigator(ctx, spec); err != nil {
		h.l.Errorf(ctx, "store.SaveNavigator: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, gin.H{"id": spec.ID})
}
