package http

import (
	"github.com/gin-gonic/gin"
)

// processSaveSourceReq binds the body and takes the id from the URI.
func (h *handler) processSaveSourceReq(c *gin.Context) (saveSourceReq, error) {
	var req saveSourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	return req, nil
}

// processSaveNavigatorReq binds the body and takes the id from the URI.
func (h *handler) processSaveNavigatorReq(c *gin.Context) (saveNavigatorReq, error) {
	var req saveNavigatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	return req, nil
}
