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
		provider.stores.QRShareStore = NewQRShareStore(provider)
	})
}

// QRShareStore 处理neodocs_qr_share表的操作
type QRShareStore struct {
	CommonFields
}

func NewQRShareStore(provider SqlProviderAchieve) *QRShareStore {
	repo := &QRShareStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_QR_SHARE)
	repo.SetAllColumns("id", "appid", "document_id", "created_by", "title", "description", "permission",
		"expires_at", "max_views", "current_views", "qr_code_url", "status", "updated_at", "created_at")
	return repo
}

// Create 创建分享记录
func (s *QRShareStore) Create(ctx context.Context, data types.QRShare) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "appid", "document_id", "created_by", "title", "description", "permission",
			"expires_at", "max_views", "current_views", "qr_code_url", "status", "updated_at", "created_at").
		Values(data.ID, data.Appid, data.DocumentID, data.CreatedBy, data.Title, data.Description, data.Permission,
			data.ExpiresAt, data.MaxViews, data.CurrentViews, data.QRCodeURL, data.Status, data.UpdatedAt, data.CreatedAt)

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

// GetQRShare 根据ID获取分享
func (s *QRShareStore) GetQRShare(ctx context.Context, id string) (*types.QRShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.QRShare
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateStatus 更新分享状态
func (s *QRShareStore) UpdateStatus(ctx context.Context, id, status string) error {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UpdateQRCodeURL 回填二维码图片地址
func (s *QRShareStore) UpdateQRCodeURL(ctx context.Context, id, url string) error {
	query := sq.Update(s.GetTable()).
		Set("qr_code_url", url).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// IncrementViews 条件自增访问计数。所有活跃性条件都放在 WHERE 里，
// 并发访问同一分享时数据库保证计数不会越过 max_views。
func (s *QRShareStore) IncrementViews(ctx context.Context, id string, now int64) (bool, error) {
	query := sq.Update(s.GetTable()).
		Set("current_views", sq.Expr("current_views + 1")).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "status": types.QR_SHARE_STATUS_ACTIVE}).
		Where(sq.GtOrEq{"expires_at": now}).
		Where(sq.Expr("current_views < max_views"))

	queryString, args, err := query.ToSql()
	if err != nil {
		return false, ErrorSqlBuild(err)
	}

	result, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// List 分页获取分享列表
func (s *QRShareStore) List(ctx context.Context, opts types.GetQRShareOptions, page, pageSize uint64) ([]types.QRShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.QRShare
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *QRShareStore) Total(ctx context.Context, opts types.GetQRShareOptions) (int64, error) {
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

// ListExpiredActive 找出状态列还挂着 active 但实际已失效的分享，
// 供后台任务把缓存的状态列刷成一致。
func (s *QRShareStore) ListExpiredActive(ctx context.Context, now int64, limit uint64) ([]types.QRShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"status": types.QR_SHARE_STATUS_ACTIVE}).
		Where(sq.Or{
			sq.LtOrEq{"expires_at": now},
			sq.Expr("current_views >= max_views"),
		}).
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.QRShare
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
