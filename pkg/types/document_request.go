package types

import (
	sq "github.com/Masterminds/squirrel"
)

// 文档索取请求状态
const (
	DOCUMENT_REQUEST_STATUS_PENDING  = "pending"
	DOCUMENT_REQUEST_STATUS_APPROVED = "approved"
	DOCUMENT_REQUEST_STATUS_DECLINED = "declined"
	DOCUMENT_REQUEST_STATUS_EXPIRED  = "expired"
)

// 请求处理方式
const (
	REQUEST_RESPONSE_APPROVE = "approve"
	REQUEST_RESPONSE_DECLINE = "decline"
)

type DocumentRequest struct {
	ID              string `json:"id" db:"id"`                             // 请求唯一标识符
	Appid           string `json:"appid" db:"appid"`                       // 租户id
	RequesterID     string `json:"requester_id" db:"requester_id"`         // 请求发起人
	RequesteeID     string `json:"requestee_id" db:"requestee_id"`         // 请求接收人
	Title           string `json:"title" db:"title"`                       // 请求的文档标题
	Description     string `json:"description" db:"description"`           // 请求说明
	Status          string `json:"status" db:"status"`                     // 请求状态
	ResponseMessage string `json:"response_message" db:"response_message"` // 回复附言
	RespondedAt     int64  `json:"responded_at" db:"responded_at"`         // 回复时间，0 表示未回复
	UpdatedAt       int64  `json:"updated_at" db:"updated_at"`
	CreatedAt       int64  `json:"created_at" db:"created_at"`
}

type GetDocumentRequestOptions struct {
	Appid       string
	RequesterID string
	RequesteeID string
	Status      string
}

func (opts GetDocumentRequestOptions) Apply(query *sq.SelectBuilder) {
	if opts.Appid != "" {
		*query = query.Where(sq.Eq{"appid": opts.Appid})
	}
	if opts.RequesterID != "" {
		*query = query.Where(sq.Eq{"requester_id": opts.RequesterID})
	}
	if opts.RequesteeID != "" {
		*query = query.Where(sq.Eq{"requestee_id": opts.RequesteeID})
	}
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}
