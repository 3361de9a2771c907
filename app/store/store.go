package store

import (
	"context"

	"github.com/neodocs/neodocs/pkg/sqlstore"
	"github.com/neodocs/neodocs/pkg/types"
)

type UserStore interface {
	sqlstore.SqlCommons // 继承通用SQL操作
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, appid, id string) (*types.User, error)
	GetByEmail(ctx context.Context, appid, email string) (*types.User, error)
	ListUsers(ctx context.Context, appid string, ids []string) ([]types.User, error)
	UpdateUserProfile(ctx context.Context, appid, id, userName, avatar string) error
	UpdateUserPassword(ctx context.Context, appid, id, salt, password string) error
	Delete(ctx context.Context, appid, id string) error
}

type AccessTokenStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, appid, token string) (*types.AccessToken, error)
	Delete(ctx context.Context, appid, userID string, id int64) error
	ListAccessTokens(ctx context.Context, appid, userID string, page, pageSize uint64) ([]types.AccessToken, error)
	ClearUserTokens(ctx context.Context, appid, userID string) error
}

// DocumentStore 处理文档元数据的持久化，文件本体在对象存储
type DocumentStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Document) error
	GetDocument(ctx context.Context, appid, id string) (*types.Document, error)
	Update(ctx context.Context, appid, id string, args types.UpdateDocumentArgs) error
	UpdateStatus(ctx context.Context, appid, id, status string) error
	Delete(ctx context.Context, appid, id string) error
	ListDocuments(ctx context.Context, opts types.GetDocumentOptions, page, pageSize uint64) ([]types.Document, error)
	Total(ctx context.Context, opts types.GetDocumentOptions) (int64, error)
}

type DocumentAccessStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.DocumentAccess) error
	GetAccess(ctx context.Context, documentID, userID string) (*types.DocumentAccess, error)
	UpdatePermission(ctx context.Context, documentID, userID, permission string) error
	Delete(ctx context.Context, documentID, userID string) error
	DeleteAll(ctx context.Context, documentID string) error
	ListByDocument(ctx context.Context, documentID string) ([]types.DocumentAccess, error)
	ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.DocumentAccess, error)
}

type DocumentShareStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.DocumentShare) (int64, error)
	GetShare(ctx context.Context, id int64) (*types.DocumentShare, error)
	GetByDocumentAndUser(ctx context.Context, documentID, sharedWith string) (*types.DocumentShare, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, opts types.GetDocumentShareOptions, page, pageSize uint64) ([]types.DocumentShare, error)
	Total(ctx context.Context, opts types.GetDocumentShareOptions) (int64, error)
}

type DocumentRequestStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.DocumentRequest) error
	GetRequest(ctx context.Context, appid, id string) (*types.DocumentRequest, error)
	Respond(ctx context.Context, appid, id, status, responseMessage string, respondedAt int64) error
	List(ctx context.Context, opts types.GetDocumentRequestOptions, page, pageSize uint64) ([]types.DocumentRequest, error)
	Total(ctx context.Context, opts types.GetDocumentRequestOptions) (int64, error)
}

// QRShareStore 持久化二维码分享记录。
// IncrementViews 必须是条件自增：仅当分享仍处于 active 状态、未过期且
// 未达到访问上限时计数才会加一，返回值表示本次自增是否生效。
type QRShareStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.QRShare) error
	GetQRShare(ctx context.Context, id string) (*types.QRShare, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateQRCodeURL(ctx context.Context, id, url string) error
	IncrementViews(ctx context.Context, id string, now int64) (bool, error)
	List(ctx context.Context, opts types.GetQRShareOptions, page, pageSize uint64) ([]types.QRShare, error)
	Total(ctx context.Context, opts types.GetQRShareOptions) (int64, error)
	ListExpiredActive(ctx context.Context, now int64, limit uint64) ([]types.QRShare, error)
}

type ShareSessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ShareSession) error
	GetByToken(ctx context.Context, token string) (*types.ShareSession, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByQRShare(ctx context.Context, qrShareID string) ([]types.ShareSession, error)
	DeleteExpired(ctx context.Context, before int64) (int64, error)
}

// ActivityStore 只追加的审计事件存储
type ActivityStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Activity) error
	List(ctx context.Context, opts types.GetActivityOptions, page, pageSize uint64) ([]types.Activity, error)
	Total(ctx context.Context, opts types.GetActivityOptions) (int64, error)
}

type NotificationStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Notification) error
	GetNotification(ctx context.Context, appid, userID string, id int64) (*types.Notification, error)
	MarkRead(ctx context.Context, appid, userID string, id int64, readAt int64) error
	MarkAllRead(ctx context.Context, appid, userID string, readAt int64) error
	List(ctx context.Context, opts types.GetNotificationOptions, page, pageSize uint64) ([]types.Notification, error)
	TotalUnread(ctx context.Context, appid, userID string) (int64, error)
}

// Store 聚合所有仓储访问入口，core 通过该接口与持久层交互，
// 逻辑层测试可以用内存实现替换。
type Store interface {
	UserStore() UserStore
	AccessTokenStore() AccessTokenStore
	DocumentStore() DocumentStore
	DocumentAccessStore() DocumentAccessStore
	DocumentShareStore() DocumentShareStore
	DocumentRequestStore() DocumentRequestStore
	QRShareStore() QRShareStore
	ShareSessionStore() ShareSessionStore
	ActivityStore() ActivityStore
	NotificationStore() NotificationStore
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
