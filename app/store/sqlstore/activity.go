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
		provider.stores.ActivityStore = NewActivityStore(provider)
	})
}

// ActivityStore 审计事件存储，只有插入和查询
type ActivityStore struct {
	CommonFields
}

func NewActivityStore(provider SqlProviderAchieve) *ActivityStore {
	repo := &ActivityStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ACTIVITY)
	repo.SetAllColumns("id", "appid", "user_id", "activity_type", "document_id", "qr_share_id",
		"session_id", "request_id", "description", "metadata", "ip_address", "user_agent", "created_at")
	return repo
}

func (s *ActivityStore) Create(ctx context.Context, data types.Activity) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("appid", "user_id", "activity_type", "document_id", "qr_share_id",
			"session_id", "request_id", "description", "metadata", "ip_address", "user_agent", "created_at").
		Values(data.Appid, data.UserID, data.ActivityType, data.DocumentID, data.QRShareID,
			data.SessionID, data.RequestID, data.Description, data.Metadata, data.IPAddress, data.UserAgent, data.CreatedAt)

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

func (s *ActivityStore) List(ctx context.Context, opts types.GetActivityOptions, page, pageSize uint64) ([]types.Activity, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC", "id DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Activity
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ActivityStore) Total(ctx context.Context, opts types.GetActivityOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	opts.Apply(&query)

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
