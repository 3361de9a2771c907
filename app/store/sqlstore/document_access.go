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
		provider.stores.DocumentAccessStore = NewDocumentAccessStore(provider)
	})
}

// DocumentAccessStore 处理文档授权记录
type DocumentAccessStore struct {
	CommonFields
}

func NewDocumentAccessStore(provider SqlProviderAchieve) *DocumentAccessStore {
	repo := &DocumentAccessStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOCUMENT_ACCESS)
	repo.SetAllColumns("id", "document_id", "user_id", "permission", "granted_by", "notes", "expires_at", "granted_at")
	return repo
}

func (s *DocumentAccessStore) Create(ctx context.Context, data types.DocumentAccess) error {
	if data.GrantedAt == 0 {
		data.GrantedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("document_id", "user_id", "permission", "granted_by", "notes", "expires_at", "granted_at").
		Values(data.DocumentID, data.UserID, data.Permission, data.GrantedBy, data.Notes, data.ExpiresAt, data.GrantedAt)

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

func (s *DocumentAccessStore) GetAccess(ctx context.Context, documentID, userID string) (*types.DocumentAccess, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"document_id": documentID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.DocumentAccess
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DocumentAccessStore) UpdatePermission(ctx context.Context, documentID, userID, permission string) error {
	query := sq.Update(s.GetTable()).
		Set("permission", permission).
		Where(sq.Eq{"document_id": documentID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentAccessStore) Delete(ctx context.Context, documentID, userID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentAccessStore) DeleteAll(ctx context.Context, documentID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentAccessStore) ListByDocument(ctx context.Context, documentID string) ([]types.DocumentAccess, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"document_id": documentID}).OrderBy("granted_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.DocumentAccess
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DocumentAccessStore) ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.DocumentAccess, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID}).OrderBy("granted_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.DocumentAccess
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
