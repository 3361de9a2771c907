package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/neodocs/neodocs/pkg/register"
	"github.com/neodocs/neodocs/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.NotificationStore = NewNotificationStore(provider)
	})
}

// NotificationStore 处理站内通知
type NotificationStore struct {
	CommonFields
}

func NewNotificationStore(provider SqlProviderAchieve) *NotificationStore {
	repo := &NotificationStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_NOTIFICATION)
	repo.SetAllColumns("id", "appid", "user_id", "type", "title", "body", "document_id", "qr_share_id", "request_id", "is_read", "read_at", "created_at")
	return repo
}

func (s *NotificationStore) Create(ctx context.Context, data types.Notification) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("appid", "user_id", "type", "title", "body", "document_id", "qr_share_id", "request_id", "is_read", "read_at", "created_at").
		Values(data.Appid, data.UserID, data.Type, data.Title, data.Body, data.DocumentID, data.QRShareID, data.RequestID, data.IsRead, data.ReadAt, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

func (s *NotificationStore) GetNotification(ctx context.Context, appid, userID string, id int64) (*types.Notification, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"appid": appid, "user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Notification
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, appid, userID string, id int64, readAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("is_read", true).
		Set("read_at", readAt).
		Where(sq.Eq{"appid": appid, "user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, appid, userID string, readAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("is_read", true).
		Set("read_at", readAt).
		Where(sq.Eq{"appid": appid, "user_id": userID, "is_read": false})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NotificationStore) List(ctx context.Context, opts types.GetNotificationOptions, page, pageSize uint64) ([]types.Notification, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC", "id DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Notification
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *NotificationStore) TotalUnread(ctx context.Context, appid, userID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"appid": appid, "user_id": userID, "is_read": false})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}
