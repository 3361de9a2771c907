package v1

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/app/core/srv"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/security"
)

type _userInfo struct {
	ctx  context.Context
	core *core.Core
	u    *security.TokenClaims
}

func (u *_userInfo) GetUserInfo() security.TokenClaims {
	return *u.u
}

func (u *_userInfo) Identification(roler srv.RoleObject, permission string) error {
	if err := u.core.Srv().RBAC().Check(u.GetUserInfo(), roler, permission); err != nil {
		return err
	}
	return nil
}

// 通过文档id懒加载该文档的所有者
func (u *_userInfo) lazyRolerFromDocumentID(appid, id string) *srv.LazyRoler {
	return srv.NewRolerWithLazyload(func() (string, error) {
		doc, err := u.core.Store().DocumentStore().GetDocument(u.ctx, appid, id)
		if err != nil && err != sql.ErrNoRows {
			return "", errors.New("_userInfo.RolerWithLazyload", i18n.ERROR_INTERNAL, err)
		}
		if doc == nil {
			return "", errors.New("_userInfo.RolerWithLazyload.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil)
		}
		return doc.OwnerID, nil
	})
}

func SetupUserInfo(ctx context.Context, core *core.Core) UserInfo {
	userInfo, ok := InjectTokenClaim(ctx)
	if !ok {
		slog.Error("Not found user in context", slog.String("component", "logic.v1.setupUserInfo"))
		userInfo = security.TokenClaims{}
	}
	return &_userInfo{
		ctx:  ctx,
		u:    &userInfo,
		core: core,
	}
}

type UserInfo interface {
	GetUserInfo() security.TokenClaims
	Identification(roler srv.RoleObject, permission string) error
	lazyRolerFromDocumentID(appid, id string) *srv.LazyRoler
}
