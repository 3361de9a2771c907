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
		provider.stores.DocumentRequestStore = NewDocumentRequestStore(provider)
	})
}

// DocumentRequestStore 处理文档索取请求
type DocumentRequestStore struct {
	CommonFields
}

func NewDocumentRequestStore(provider SqlProviderAchieve) *DocumentRequestStore {
	repo := &DocumentRequestStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOCUMENT_REQUEST)
	repo.SetAllColumns("id", "appid", "requester_id", "requestee_id", "title", "description", "status", "response_message", "responded_at", "updated_at", "created_at")
	return repo
}

func (s *DocumentRequestStore) Create(ctx context.Context, data types.DocumentRequest) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "appid", "requester_id", "requestee_id", "title", "description", "status", "response_message", "responded_at", "updated_at", "created_at").
		Values(data.ID, data.Appid, data.RequesterID, data.RequesteeID, data.Title, data.Description, data.Status, data.ResponseMessage, data.RespondedAt, data.UpdatedAt, data.CreatedAt)

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

func (s *DocumentRequestStore) GetRequest(ctx context.Context, appid, id string) (*types.DocumentRequest, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"appid": appid, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.DocumentRequest
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Respond 写入请求的处理结果
func (s *DocumentRequestStore) Respond(ctx context.Context, appid, id, status, responseMessage string, respondedAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Set("response_message", responseMessage).
		Set("responded_at", respondedAt).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"appid": appid, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentRequestStore) List(ctx context.Context, opts types.GetDocumentRequestOptions, page, pageSize uint64) ([]types.DocumentRequest, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.DocumentRequest
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DocumentRequestStore) Total(ctx context.Context, opts types.GetDocumentRequestOptions) (int64, error) {
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
