package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// 文档信任级别
const (
	DOCUMENT_TRUST_USER_UPLOADED     = "user_uploaded"
	DOCUMENT_TRUST_PEER_SHARED       = "peer_shared"
	DOCUMENT_TRUST_OFFICIALLY_ISSUED = "officially_issued"
)

// 文档状态
const (
	DOCUMENT_STATUS_ACTIVE   = "active"
	DOCUMENT_STATUS_EXPIRED  = "expired"
	DOCUMENT_STATUS_REVOKED  = "revoked"
	DOCUMENT_STATUS_ARCHIVED = "archived"
)

type Document struct {
	ID               string   `json:"id" db:"id"`                               // 文档唯一标识符
	Appid            string   `json:"appid" db:"appid"`                         // 租户id
	OwnerID          string   `json:"owner_id" db:"owner_id"`                   // 文档所有者
	Title            string   `json:"title" db:"title"`                         // 文档标题
	Description      string   `json:"description" db:"description"`             // 文档描述
	FilePath         string   `json:"file_path" db:"file_path"`                 // 对象存储中的文件路径
	FileSize         int64    `json:"file_size" db:"file_size"`                 // 文件大小（字节）
	FileType         string   `json:"file_type" db:"file_type"`                 // 文件扩展名
	OriginalFilename string   `json:"original_filename" db:"original_filename"` // 上传时的原始文件名
	TrustLevel       string   `json:"trust_level" db:"trust_level"`             // 信任级别
	Status           string   `json:"status" db:"status"`                       // 文档状态
	Tags             TagList  `json:"tags" db:"tags"`                           // 标签列表 (JSONB)
	UpdatedAt        int64    `json:"updated_at" db:"updated_at"`
	CreatedAt        int64    `json:"created_at" db:"created_at"`
}

// TagList stores document tags as a JSONB column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

type UpdateDocumentArgs struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tags        TagList `json:"tags"`
}

type GetDocumentOptions struct {
	Appid   string
	OwnerID string
	Status  string
	Keyword string
}

func (opts GetDocumentOptions) Apply(query *sq.SelectBuilder) {
	if opts.Appid != "" {
		*query = query.Where(sq.Eq{"appid": opts.Appid})
	}
	if opts.OwnerID != "" {
		*query = query.Where(sq.Eq{"owner_id": opts.OwnerID})
	}
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
	if opts.Keyword != "" {
		*query = query.Where(sq.Like{"title": fmt.Sprintf("%%%s%%", opts.Keyword)})
	}
}
