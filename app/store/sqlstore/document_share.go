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
		provider.stores.DocumentShareStore = NewDocumentShareStore(provider)
	})
}

// DocumentShareStore 处理点对点分享记录
type DocumentShareStore struct {
	CommonFields
}

func NewDocumentShareStore(provider SqlProviderAchieve) *DocumentShareStore {
	repo := &DocumentShareStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOCUMENT_SHARE)
	repo.SetAllColumns("id", "document_id", "shared_by", "shared_with", "permission", "status", "message", "expires_at", "updated_at", "created_at")
	return repo
}

// Create 创建分享记录，返回自增ID
func (s *DocumentShareStore) Create(ctx context.Context, data types.DocumentShare) (int64, error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	query := sq.Insert(s.GetTable()).
		Columns("document_id", "shared_by", "shared_with", "permission", "status", "message", "expires_at", "updated_at", "created_at").
		Values(data.DocumentID, data.SharedBy, data.SharedWith, data.Permission, data.Status, data.Message, data.ExpiresAt, data.UpdatedAt, data.CreatedAt).
		Suffix("RETURNING id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var id int64
	if err = s.GetReplica(ctx).QueryRowx(queryString, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *DocumentShareStore) GetShare(ctx context.Context, id int64) (*types.DocumentShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.DocumentShare
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByDocumentAndUser 查询某文档对某用户的分享记录
func (s *DocumentShareStore) GetByDocumentAndUser(ctx context.Context, documentID, sharedWith string) (*types.DocumentShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"document_id": documentID, "shared_with": sharedWith}).
		OrderBy("created_at DESC").Limit(1)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.DocumentShare
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DocumentShareStore) UpdateStatus(ctx context.Context, id int64, status string) error {
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

func (s *DocumentShareStore) List(ctx context.Context, opts types.GetDocumentShareOptions, page, pageSize uint64) ([]types.DocumentShare, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.DocumentShare
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DocumentShareStore) Total(ctx context.Context, opts types.GetDocumentShareOptions) (int64, error) {
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
