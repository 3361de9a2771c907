package types

import (
	sq "github.com/Masterminds/squirrel"
)

// 通知类型
const (
	NOTIFICATION_TYPE_SHARE_RECEIVED    = "share_received"
	NOTIFICATION_TYPE_REQUEST_RECEIVED  = "request_received"
	NOTIFICATION_TYPE_REQUEST_RESPONDED = "request_responded"
	NOTIFICATION_TYPE_QR_ACCESSED       = "qr_accessed"
	NOTIFICATION_TYPE_SHARE_EXPIRED     = "share_expired"
)

// Notification 站内通知
type Notification struct {
	ID         int64  `json:"id" db:"id"`                   // 主键，自增ID
	Appid      string `json:"appid" db:"appid"`             // 租户id
	UserID     string `json:"user_id" db:"user_id"`         // 接收人
	Type       string `json:"type" db:"type"`               // 通知类型
	Title      string `json:"title" db:"title"`             // 标题
	Body       string `json:"body" db:"body"`               // 正文
	DocumentID string `json:"document_id" db:"document_id"` // 关联文档，可为空
	QRShareID  string `json:"qr_share_id" db:"qr_share_id"` // 关联分享，可为空
	RequestID  string `json:"request_id" db:"request_id"`   // 关联索取请求，可为空
	IsRead     bool   `json:"is_read" db:"is_read"`         // 是否已读
	ReadAt     int64  `json:"read_at" db:"read_at"`         // 已读时间，未读为0
	CreatedAt  int64  `json:"created_at" db:"created_at"`
}

type GetNotificationOptions struct {
	Appid      string
	UserID     string
	Type       string
	UnreadOnly bool
}

func (opts GetNotificationOptions) Apply(query *sq.SelectBuilder) {
	if opts.Appid != "" {
		*query = query.Where(sq.Eq{"appid": opts.Appid})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.Type != "" {
		*query = query.Where(sq.Eq{"type": opts.Type})
	}
	if opts.UnreadOnly {
		*query = query.Where(sq.Eq{"is_read": false})
	}
}
