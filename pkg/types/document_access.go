package types

// 文档访问权限等级，admin > edit > download > view
const (
	PERMISSION_VIEW     = "view"
	PERMISSION_DOWNLOAD = "download"
	PERMISSION_EDIT     = "edit"
	PERMISSION_ADMIN    = "admin"
)

type DocumentAccess struct {
	ID         int64  `json:"id" db:"id"`                   // 主键，自增ID
	DocumentID string `json:"document_id" db:"document_id"` // 文档ID
	UserID     string `json:"user_id" db:"user_id"`         // 被授权用户
	Permission string `json:"permission" db:"permission"`   // 授权等级
	GrantedBy  string `json:"granted_by" db:"granted_by"`   // 授权人
	Notes      string `json:"notes" db:"notes"`             // 备注
	ExpiresAt  int64  `json:"expires_at" db:"expires_at"`   // 过期时间，0 表示永不过期
	GrantedAt  int64  `json:"granted_at" db:"granted_at"`   // 授权时间
}
