package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// 审计事件类型
const (
	ACTIVITY_QR_CREATED         = "qr_created"
	ACTIVITY_QR_ACCESSED        = "qr_accessed"
	ACTIVITY_QR_REVOKED         = "qr_revoked"
	ACTIVITY_DOCUMENT_SHARED    = "document_shared"
	ACTIVITY_DOCUMENT_REQUESTED = "document_requested"
	ACTIVITY_REQUEST_RESPONDED  = "request_responded"
	ACTIVITY_ACCESS_GRANTED     = "access_granted"
	ACTIVITY_ACCESS_REVOKED     = "access_revoked"
)

// Activity 审计事件，只追加，任何正常流程不修改或删除
type Activity struct {
	ID           int64    `json:"id" db:"id"`                         // 主键，自增ID
	Appid        string   `json:"appid" db:"appid"`                   // 租户id
	UserID       string   `json:"user_id" db:"user_id"`               // 事件归属用户
	ActivityType string   `json:"activity_type" db:"activity_type"`   // 事件类型
	DocumentID   string   `json:"document_id" db:"document_id"`       // 关联文档，可为空
	QRShareID    string   `json:"qr_share_id" db:"qr_share_id"`       // 关联分享，可为空
	SessionID    string   `json:"session_id" db:"session_id"`         // 关联会话，可为空
	RequestID    string   `json:"request_id" db:"request_id"`         // 关联请求，可为空
	Description  string   `json:"description" db:"description"`       // 事件描述
	Metadata     Metadata `json:"metadata" db:"metadata"`             // 结构化附加信息 (JSONB)
	IPAddress    string   `json:"ip_address" db:"ip_address"`         // 来源IP（尽力记录）
	UserAgent    string   `json:"user_agent" db:"user_agent"`         // 来源UA（尽力记录）
	CreatedAt    int64    `json:"created_at" db:"created_at"`
}

// Metadata stores structured event details as a JSONB column.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
}

type GetActivityOptions struct {
	Appid        string
	UserID       string
	ActivityType string
	DocumentID   string
	QRShareID    string
	TimeFrom     int64
	TimeTo       int64
}

func (opts GetActivityOptions) Apply(query *sq.SelectBuilder) {
	if opts.Appid != "" {
		*query = query.Where(sq.Eq{"appid": opts.Appid})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.ActivityType != "" {
		*query = query.Where(sq.Eq{"activity_type": opts.ActivityType})
	}
	if opts.DocumentID != "" {
		*query = query.Where(sq.Eq{"document_id": opts.DocumentID})
	}
	if opts.QRShareID != "" {
		*query = query.Where(sq.Eq{"qr_share_id": opts.QRShareID})
	}
	if opts.TimeFrom > 0 {
		*query = query.Where(sq.GtOrEq{"created_at": opts.TimeFrom})
	}
	if opts.TimeTo > 0 {
		*query = query.Where(sq.LtOrEq{"created_at": opts.TimeTo})
	}
}
