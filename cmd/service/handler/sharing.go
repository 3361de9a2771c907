package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type ShareDocumentRequest struct {
	SharedWith string `json:"shared_with" form:"shared_with" binding:"required"`
	Permission string `json:"permission" form:"permission" binding:"required"`
	Message    string `json:"message" form:"message" binding:"max=512"`
	ExpiresAt  int64  `json:"expires_at" form:"expires_at"`
}

func (s *HttpSrv) ShareDocument(c *gin.Context) {
	id, _ := c.Params.Get("id")

	var (
		err error
		req ShareDocumentRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	share, err := v1.NewDocumentShareLogic(c, s.Core).ShareDocument(id, req.SharedWith, req.Permission, req.Message, req.ExpiresAt)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, share)
}

type RespondShareRequest struct {
	Accept *bool `json:"accept" form:"accept" binding:"required"`
}

func (s *HttpSrv) RespondShare(c *gin.Context) {
	var (
		err error
		req RespondShareRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	idStr, _ := c.Params.Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.APIError(c, errors.New("HttpSrv.RespondShare.id", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}

	if err = v1.NewDocumentShareLogic(c, s.Core).RespondShare(id, *req.Accept); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type ListSharesRequest struct {
	Direction string `json:"direction" form:"direction"` // sent | received
	Page      uint64 `json:"page" form:"page" binding:"required"`
	Pagesize  uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListSharesResponse struct {
	List []types.DocumentShare `json:"list"`
}

func (s *HttpSrv) ListShares(c *gin.Context) {
	var (
		err error
		req ListSharesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewDocumentShareLogic(c, s.Core)

	var list []types.DocumentShare
	if req.Direction == "sent" {
		list, err = logic.ListSharedByMe(req.Page, req.Pagesize)
	} else {
		list, err = logic.ListSharedWithMe(req.Page, req.Pagesize)
	}
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListSharesResponse{List: list})
}

type CreateDocumentRequestRequest struct {
	RequesteeID string `json:"requestee_id" form:"requestee_id" binding:"required"`
	Title       string `json:"title" form:"title" binding:"required,max=128"`
	Description string `json:"description" form:"description" binding:"max=1024"`
}

func (s *HttpSrv) CreateDocumentRequest(c *gin.Context) {
	var (
		err error
		req CreateDocumentRequestRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	request, err := v1.NewDocumentRequestLogic(c, s.Core).CreateRequest(req.RequesteeID, req.Title, req.Description)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, request)
}

type RespondDocumentRequestRequest struct {
	Action          string `json:"action" form:"action" binding:"required"` // approve | decline
	ResponseMessage string `json:"response_message" form:"response_message" binding:"max=512"`
	DocumentID      string `json:"document_id" form:"document_id"`
}

func (s *HttpSrv) RespondDocumentRequest(c *gin.Context) {
	id, _ := c.Params.Get("id")

	var (
		err error
		req RespondDocumentRequestRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewDocumentRequestLogic(c, s.Core).RespondRequest(id, req.Action, req.ResponseMessage, req.DocumentID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type ListDocumentRequestsRequest struct {
	Direction string `json:"direction" form:"direction"` // sent | received
	Page      uint64 `json:"page" form:"page" binding:"required"`
	Pagesize  uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListDocumentRequestsResponse struct {
	List []types.DocumentRequest `json:"list"`
}

func (s *HttpSrv) ListDocumentRequests(c *gin.Context) {
	var (
		err error
		req ListDocumentRequestsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewDocumentRequestLogic(c, s.Core)

	var list []types.DocumentRequest
	if req.Direction == "sent" {
		list, err = logic.ListSent(req.Page, req.Pagesize)
	} else {
		list, err = logic.ListReceived(req.Page, req.Pagesize)
	}
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListDocumentRequestsResponse{List: list})
}

func (s *HttpSrv) GetSharingStats(c *gin.Context) {
	stats, err := v1.NewStatsLogic(c, s.Core).GetSharingStats()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, stats)
}
