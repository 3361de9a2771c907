package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type ListNotificationsRequest struct {
	Type       string `json:"type" form:"type"`
	UnreadOnly bool   `json:"unread_only" form:"unread_only"`
	Page       uint64 `json:"page" form:"page" binding:"required"`
	Pagesize   uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListNotificationsResponse struct {
	List   []types.Notification `json:"list"`
	Unread int64                `json:"unread"`
}

func (s *HttpSrv) ListNotifications(c *gin.Context) {
	var (
		err error
		req ListNotificationsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewNotificationLogic(c, s.Core)
	list, err := logic.ListNotifications(req.Type, req.UnreadOnly, req.Page, req.Pagesize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	unread, err := logic.UnreadCount()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListNotificationsResponse{List: list, Unread: unread})
}

type MarkNotificationReadRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

func (s *HttpSrv) MarkNotificationRead(c *gin.Context) {
	var (
		err error
		req MarkNotificationReadRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewNotificationLogic(c, s.Core).MarkRead(req.ID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) MarkAllNotificationsRead(c *gin.Context) {
	if err := v1.NewNotificationLogic(c, s.Core).MarkAllRead(); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
