package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/neodocs/neodocs/pkg/register"
	"github.com/neodocs/neodocs/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ShareSessionStore = NewShareSessionStore(provider)
	})
}

// ShareSessionStore 处理访问会话记录
type ShareSessionStore struct {
	CommonFields
}

func NewShareSessionStore(provider SqlProviderAchieve) *ShareSessionStore {
	repo := &ShareSessionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SHARE_SESSION)
	repo.SetAllColumns("id", "qr_share_id", "session_token", "ip_address", "user_agent", "status", "accessed_at", "expires_at")
	return repo
}

func (s *ShareSessionStore) Create(ctx context.Context, data types.ShareSession) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "qr_share_id", "session_token", "ip_address", "user_agent", "status", "accessed_at", "expires_at").
		Values(data.ID, data.QRShareID, data.SessionToken, data.IPAddress, data.UserAgent, data.Status, data.AccessedAt, data.ExpiresAt)

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

// GetByToken session_token 全局唯一，按 token 查询
func (s *ShareSessionStore) GetByToken(ctx context.Context, token string) (*types.ShareSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_token": token})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ShareSession
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *ShareSessionStore) UpdateStatus(ctx context.Context, id, status string) error {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ShareSessionStore) ListByQRShare(ctx context.Context, qrShareID string) ([]types.ShareSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"qr_share_id": qrShareID}).OrderBy("accessed_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ShareSession
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteExpired 清理过期会话，返回删除数量
func (s *ShareSessionStore) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	query := sq.Delete(s.GetTable()).Where(sq.Lt{"expires_at": before})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	result, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
