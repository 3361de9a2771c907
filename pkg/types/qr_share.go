package types

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// QR 分享权限
const (
	QR_SHARE_PERMISSION_VIEW     = "view"
	QR_SHARE_PERMISSION_DOWNLOAD = "download"
)

// QR 分享状态。状态列只是衍生判断的缓存：失效的分享可能仍然带着
// active 状态，活跃性必须通过 IsActive 从原始字段重新计算。
const (
	QR_SHARE_STATUS_ACTIVE  = "active"
	QR_SHARE_STATUS_EXPIRED = "expired"
	QR_SHARE_STATUS_REVOKED = "revoked"
)

// QRShare 表示一个限时限次的文档分享，ID 同时是二维码中携带的不透明标识
type QRShare struct {
	ID           string `json:"id" db:"id"`                       // 分享唯一标识符，二维码载荷
	Appid        string `json:"appid" db:"appid"`                 // 租户id
	DocumentID   string `json:"document_id" db:"document_id"`     // 关联文档ID
	CreatedBy    string `json:"created_by" db:"created_by"`       // 创建人
	Title        string `json:"title" db:"title"`                 // 分享标题
	Description  string `json:"description" db:"description"`     // 分享描述
	Permission   string `json:"permission" db:"permission"`       // view 或 download
	ExpiresAt    int64  `json:"expires_at" db:"expires_at"`       // 过期时间，UNIX时间戳
	MaxViews     int64  `json:"max_views" db:"max_views"`         // 访问次数上限 (>=1)
	CurrentViews int64  `json:"current_views" db:"current_views"` // 已访问次数
	QRCodeURL    string `json:"qr_code_url" db:"qr_code_url"`     // 二维码图片地址
	Status       string `json:"status" db:"status"`               // 状态（仅作缓存）
	UpdatedAt    int64  `json:"updated_at" db:"updated_at"`
	CreatedAt    int64  `json:"created_at" db:"created_at"`
}

type GetQRShareOptions struct {
	Appid      string
	CreatedBy  string
	DocumentID string
	Status     string
}

func (opts GetQRShareOptions) Apply(query *sq.SelectBuilder) {
	if opts.Appid != "" {
		*query = query.Where(sq.Eq{"appid": opts.Appid})
	}
	if opts.CreatedBy != "" {
		*query = query.Where(sq.Eq{"created_by": opts.CreatedBy})
	}
	if opts.DocumentID != "" {
		*query = query.Where(sq.Eq{"document_id": opts.DocumentID})
	}
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}

// IsExpired reports whether the share's deadline has passed.
func (s *QRShare) IsExpired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}

// IsViewLimitReached reports whether the view ceiling is exhausted.
func (s *QRShare) IsViewLimitReached() bool {
	return s.CurrentViews >= s.MaxViews
}

// IsActive recomputes activeness from raw fields. The status column is
// advisory only; a share past its deadline or ceiling is inactive even
// while status still reads active.
func (s *QRShare) IsActive(now time.Time) bool {
	return s.Status == QR_SHARE_STATUS_ACTIVE && !s.IsExpired(now) && !s.IsViewLimitReached()
}
