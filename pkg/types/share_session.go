package types

import "time"

// 访问会话状态。revoked 预留给管理操作，正常访问流程不会写入。
const (
	SHARE_SESSION_STATUS_ACTIVE  = "active"
	SHARE_SESSION_STATUS_EXPIRED = "expired"
	SHARE_SESSION_STATUS_REVOKED = "revoked"
)

// ShareSession 是针对某个 QRShare 颁发给单个访问者的临时凭证
type ShareSession struct {
	ID           string `json:"id" db:"id"`                       // 会话唯一标识符
	QRShareID    string `json:"qr_share_id" db:"qr_share_id"`     // 所属分享ID
	SessionToken string `json:"session_token" db:"session_token"` // 会话 Token，唯一且不可猜测
	IPAddress    string `json:"ip_address" db:"ip_address"`       // 访问者IP（尽力记录）
	UserAgent    string `json:"user_agent" db:"user_agent"`       // 访问者UA（尽力记录）
	Status       string `json:"status" db:"status"`               // 会话状态
	AccessedAt   int64  `json:"accessed_at" db:"accessed_at"`     // 颁发时间
	ExpiresAt    int64  `json:"expires_at" db:"expires_at"`       // 会话过期时间
}

// IsExpired reports whether the session's own window has closed. The
// session window is checked separately from the share deadline; one
// never substitutes for the other.
func (s *ShareSession) IsExpired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}
