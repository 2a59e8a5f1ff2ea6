package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"insight-engine/internal/model"
)

// processQueryReq binds and validates the query request body, resolving
// the request scope from body fields with generated fallbacks.
func (h *handler) processQueryReq(c *gin.Context) (queryReq, model.Scope, error) {
	var req queryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, err
	}
	if err := req.validate(); err != nil {
		return req, model.Scope{}, err
	}

	sc := model.Scope{
		SessionID: req.SessionID,
		UserID:    req.UserID,
	}
	if sc.SessionID == "" {
		sc.SessionID = uuid.NewString()
	}
	return req, sc, nil
}
