package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type ListActivitiesRequest struct {
	ActivityType string `json:"activity_type" form:"activity_type"`
	DocumentID   string `json:"document_id" form:"document_id"`
	QRShareID    string `json:"qr_share_id" form:"qr_share_id"`
	TimeFrom     int64  `json:"time_from" form:"time_from"`
	TimeTo       int64  `json:"time_to" form:"time_to"`
	Page         uint64 `json:"page" form:"page" binding:"required"`
	Pagesize     uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListActivitiesResponse struct {
	List  []types.Activity `json:"list"`
	Total int64            `json:"total"`
}

func (s *HttpSrv) ListActivities(c *gin.Context) {
	var (
		err error
		req ListActivitiesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, total, err := v1.NewActivityLogic(c, s.Core).ListActivities(v1.ListActivityArgs{
		ActivityType: req.ActivityType,
		DocumentID:   req.DocumentID,
		QRShareID:    req.QRShareID,
		TimeFrom:     req.TimeFrom,
		TimeTo:       req.TimeTo,
	}, req.Page, req.Pagesize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListActivitiesResponse{List: list, Total: total})
}
