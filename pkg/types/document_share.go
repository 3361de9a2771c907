package types

import (
	sq "github.com/Masterminds/squirrel"
)

// 点对点分享状态
const (
	DOCUMENT_SHARE_STATUS_PENDING  = "pending"
	DOCUMENT_SHARE_STATUS_ACCEPTED = "accepted"
	DOCUMENT_SHARE_STATUS_DECLINED = "declined"
	DOCUMENT_SHARE_STATUS_EXPIRED  = "expired"
)

type DocumentShare struct {
	ID         int64  `json:"id" db:"id"`                   // 主键，自增ID
	DocumentID string `json:"document_id" db:"document_id"` // 文档ID
	SharedBy   string `json:"shared_by" db:"shared_by"`     // 分享发起人
	SharedWith string `json:"shared_with" db:"shared_with"` // 分享接收人
	Permission string `json:"permission" db:"permission"`   // 授权等级
	Status     string `json:"status" db:"status"`           // 分享状态
	Message    string `json:"message" db:"message"`         // 附言
	ExpiresAt  int64  `json:"expires_at" db:"expires_at"`   // 过期时间，0 表示永不过期
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
	CreatedAt  int64  `json:"created_at" db:"created_at"`
}

type GetDocumentShareOptions struct {
	DocumentID string
	SharedBy   string
	SharedWith string
	Status     string
}

func (opts GetDocumentShareOptions) Apply(query *sq.SelectBuilder) {
	if opts.DocumentID != "" {
		*query = query.Where(sq.Eq{"document_id": opts.DocumentID})
	}
	if opts.SharedBy != "" {
		*query = query.Where(sq.Eq{"shared_by": opts.SharedBy})
	}
	if opts.SharedWith != "" {
		*query = query.Where(sq.Eq{"shared_with": opts.SharedWith})
	}
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}
