package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type CreateQRShareRequest struct {
	DocumentID  string `json:"document_id" form:"document_id" binding:"required"`
	Title       string `json:"title" form:"title" binding:"max=128"`
	Description string `json:"description" form:"description" binding:"max=1024"`
	Permission  string `json:"permission" form:"permission" binding:"required"`
	ExpiresAt   int64  `json:"expires_at" form:"expires_at" binding:"required"`
	MaxViews    int64  `json:"max_views" form:"max_views" binding:"required"`
}

type CreateQRShareResponse struct {
	Share     *types.QRShare `json:"share"`
	AccessURL string         `json:"access_url"`
}

func (s *HttpSrv) CreateQRShare(c *gin.Context) {
	var (
		err error
		req CreateQRShareRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewQRShareLogic(c, s.Core)
	share, err := logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID:  req.DocumentID,
		Title:       req.Title,
		Description: req.Description,
		Permission:  req.Permission,
		ExpiresAt:   req.ExpiresAt,
		MaxViews:    req.MaxViews,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateQRShareResponse{
		Share:     share,
		AccessURL: logic.AccessURL(share.ID),
	})
}

func (s *HttpSrv) GetQRShare(c *gin.Context) {
	id, _ := c.Params.Get("id")

	share, err := v1.NewQRShareLogic(c, s.Core).GetQRShare(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, share)
}

func (s *HttpSrv) RevokeQRShare(c *gin.Context) {
	id, _ := c.Params.Get("id")

	if err := v1.NewQRShareLogic(c, s.Core).RevokeQRShare(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

// ListShareSessions 查看自己分享被哪些会话访问过
func (s *HttpSrv) ListShareSessions(c *gin.Context) {
	id, _ := c.Params.Get("id")

	list, err := v1.NewQRShareLogic(c, s.Core).ListShareSessions(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, list)
}

type ListQRSharesRequest struct {
	DocumentID string `json:"document_id" form:"document_id"`
	Status     string `json:"status" form:"status"`
	Page       uint64 `json:"page" form:"page" binding:"required"`
	Pagesize   uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListQRSharesResponse struct {
	List  []types.QRShare `json:"list"`
	Total int64           `json:"total"`
}

func (s *HttpSrv) ListQRShares(c *gin.Context) {
	var (
		err error
		req ListQRSharesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, total, err := v1.NewQRShareLogic(c, s.Core).ListQRShares(req.DocumentID, req.Status, req.Page, req.Pagesize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListQRSharesResponse{List: list, Total: total})
}

type ShareAccessRequest struct {
	QRShareID    string `json:"qr_share_id" form:"qr_share_id" binding:"required"`
	SessionToken string `json:"session_token" form:"session_token"`
}

// ShareAccess 扫码访问入口，无需登录
func (s *HttpSrv) ShareAccess(c *gin.Context) {
	var (
		err error
		req ShareAccessRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	descriptor, err := v1.NewShareAccessLogic(c, s.Core).Access(req.QRShareID, req.SessionToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, descriptor)
}
