package http

import (
	"github.com/gin-gonic/gin"

	"insight-engine/pkg/response"
)

// Process godoc
// @Summary     Answer an analytics query
// @Description Runs the analysis pipeline over a natural-language question and returns the structured answer.
// @Tags        Insight
// @Accept      json
// @Produce     json
// @Param       body body queryReq true "Query request"
// @Success     200 {object} queryResp
// @Failure     400 {object} response.Resp "Bad Request - empty query or invalid hints"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/insight/queries [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processQueryReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Process(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newQueryResp(sc.SessionID, output))
}
