package v1

import (
	"context"
	"database/sql"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	l := &AuthLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

func (l *AuthLogic) GetAccessTokenDetail(appid, token string) (*types.AccessToken, error) {
	data, err := l.core.Store().AccessTokenStore().GetAccessToken(l.ctx, appid, token)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.GetAccessTokenDetail.AccessTokenStore.GetAccessToken", i18n.ERROR_INTERNAL, err)
	}

	return data, nil
}

func (l *AuthLogic) InitAdminUser(appid string) (string, error) {
	userID := utils.GenRandomID()
	var accessToken string
	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		err := l.core.Store().UserStore().Create(ctx, types.User{
			ID:        userID,
			Appid:     appid,
			Name:      "Admin",
			Avatar:    "/avatar/default.png",
			CreatedAt: time.Now().Unix(),
			UpdatedAt: time.Now().Unix(),
		})
		if err != nil {
			return errors.New("AuthLogic.InitAdminUser.CreateUser", i18n.ERROR_INTERNAL, err)
		}

		tokenStore := l.core.Store().AccessTokenStore()
	REGEN:
		accessToken = utils.RandomStr(100)
		exist, err := tokenStore.GetAccessToken(ctx, appid, accessToken)
		if err != nil && err != sql.ErrNoRows {
			return errors.New("AuthLogic.InitAdminUser.GetAccessToken", i18n.ERROR_INTERNAL, err)
		}

		if exist != nil {
			goto REGEN
		}

		err = tokenStore.Create(ctx, types.AccessToken{
			Appid:     appid,
			UserID:    userID,
			Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
			Token:     accessToken,
			ExpiresAt: time.Now().AddDate(999, 0, 0).Unix(),
			Info:      "Admin user token",
			CreatedAt: time.Now().Unix(),
		})

		if err != nil {
			return errors.New("AuthLogic.InitAdminUser.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

func (l *AuthedUserLogic) CreateAccessToken(info string) (string, error) {
	token := utils.RandomStr(64)
	err := l.core.Store().AccessTokenStore().Create(l.ctx, types.AccessToken{
		UserID:    l.GetUserInfo().User,
		Appid:     l.GetUserInfo().Appid,
		Info:      info,
		Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
		Token:     token,
		ExpiresAt: time.Now().Local().AddDate(999, 0, 0).Unix(),
		CreatedAt: time.Now().Unix(),
	})

	if err != nil {
		return "", errors.New("AuthedUserLogic.CreateAccessToken.AccessTokenStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return token, nil
}

func (l *AuthedUserLogic) GetAccessTokens(page, pageSize uint64) ([]types.AccessToken, error) {
	list, err := l.core.Store().AccessTokenStore().ListAccessTokens(l.ctx, l.GetUserInfo().Appid, l.GetUserInfo().User, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthedUserLogic.GetAccessTokens.AccessTokenStore.ListAccessTokens", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *AuthedUserLogic) DelAccessToken(id int64) error {
	err := l.core.Store().AccessTokenStore().Delete(l.ctx, l.GetUserInfo().Appid, l.GetUserInfo().User, id)
	if err != nil {
		return errors.New("AuthedUserLogic.DelAccessToken.AccessTokenStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
