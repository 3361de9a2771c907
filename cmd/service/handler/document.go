package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type CreateDocumentRequest struct {
	Title            string        `json:"title" form:"title" binding:"required,max=128"`
	Description      string        `json:"description" form:"description" binding:"max=1024"`
	FileSize         int64         `json:"file_size" form:"file_size" binding:"required"`
	OriginalFilename string        `json:"original_filename" form:"original_filename" binding:"required"`
	TrustLevel       string        `json:"trust_level" form:"trust_level"`
	Tags             types.TagList `json:"tags" form:"tags"`
}

func (s *HttpSrv) CreateDocument(c *gin.Context) {
	var (
		err error
		req CreateDocumentRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewDocumentLogic(c, s.Core).CreateDocument(v1.CreateDocumentArgs{
		Title:            req.Title,
		Description:      req.Description,
		FileSize:         req.FileSize,
		OriginalFilename: req.OriginalFilename,
		TrustLevel:       req.TrustLevel,
		Tags:             req.Tags,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

func (s *HttpSrv) GetDocument(c *gin.Context) {
	id, _ := c.Params.Get("id")

	doc, err := v1.NewDocumentLogic(c, s.Core).GetDocument(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, doc)
}

type GetDocumentDownloadURLResponse struct {
	URL string `json:"url"`
}

func (s *HttpSrv) GetDocumentDownloadURL(c *gin.Context) {
	id, _ := c.Params.Get("id")

	url, err := v1.NewDocumentLogic(c, s.Core).GetDocumentDownloadURL(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, GetDocumentDownloadURLResponse{URL: url})
}

type UpdateDocumentRequest struct {
	Title       string        `json:"title" form:"title" binding:"required,max=128"`
	Description string        `json:"description" form:"description" binding:"max=1024"`
	Tags        types.TagList `json:"tags" form:"tags"`
}

func (s *HttpSrv) UpdateDocument(c *gin.Context) {
	id, _ := c.Params.Get("id")

	var (
		err error
		req UpdateDocumentRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err = v1.NewDocumentLogic(c, s.Core).UpdateDocument(id, types.UpdateDocumentArgs{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteDocument(c *gin.Context) {
	id, _ := c.Params.Get("id")

	if err := v1.NewDocumentLogic(c, s.Core).DeleteDocument(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type ListDocumentsRequest struct {
	Keyword  string `json:"keyword" form:"keyword"`
	Status   string `json:"status" form:"status"`
	Page     uint64 `json:"page" form:"page" binding:"required"`
	Pagesize uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListDocumentsResponse struct {
	List  []types.Document `json:"list"`
	Total int64            `json:"total"`
}

func (s *HttpSrv) ListDocuments(c *gin.Context) {
	var (
		err error
		req ListDocumentsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, total, err := v1.NewDocumentLogic(c, s.Core).ListDocuments(req.Keyword, req.Status, req.Page, req.Pagesize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListDocumentsResponse{List: list, Total: total})
}

type GrantAccessRequest struct {
	UserID     string `json:"user_id" form:"user_id" binding:"required"`
	Permission string `json:"permission" form:"permission" binding:"required"`
	Notes      string `json:"notes" form:"notes" binding:"max=256"`
	ExpiresAt  int64  `json:"expires_at" form:"expires_at"`
}

func (s *HttpSrv) GrantDocumentAccess(c *gin.Context) {
	id, _ := c.Params.Get("id")

	var (
		err error
		req GrantAccessRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err = v1.NewDocumentAccessLogic(c, s.Core).GrantAccess(id, req.UserID, req.Permission, req.Notes, req.ExpiresAt)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) RevokeDocumentAccess(c *gin.Context) {
	id, _ := c.Params.Get("id")
	userID, _ := c.Params.Get("userid")

	if err := v1.NewDocumentAccessLogic(c, s.Core).RevokeAccess(id, userID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type ListDocumentAccessResponse struct {
	List []types.DocumentAccess `json:"list"`
}

func (s *HttpSrv) ListDocumentAccess(c *gin.Context) {
	id, _ := c.Params.Get("id")

	list, err := v1.NewDocumentAccessLogic(c, s.Core).ListAccess(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListDocumentAccessResponse{List: list})
}
