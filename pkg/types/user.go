package types

type User struct {
	ID        string `json:"id" db:"id"`                 // 用户ID，主键
	Appid     string `json:"appid" db:"appid"`           // 租户id
	Name      string `json:"name" db:"name"`             // 用户名
	Email     string `json:"email" db:"email"`           // 用户邮箱，租户内唯一
	Avatar    string `json:"avatar" db:"avatar"`         // 用户头像URL
	Salt      string `json:"-" db:"salt"`                // 密码盐
	Password  string `json:"-" db:"password"`            // 加盐后的密码
	Source    string `json:"-" db:"source"`              // 用户注册来源
	UpdatedAt int64  `json:"updated_at" db:"updated_at"` // 更新时间，Unix时间戳
	CreatedAt int64  `json:"created_at" db:"created_at"` // 创建时间，Unix时间戳
}

type UserTokenMeta struct {
	UserID    string `json:"user_id"`
	Appid     string `json:"appid"`
	ExpiresAt int64  `json:"expires_at"`
}
