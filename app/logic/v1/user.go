package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

// logic for unlogin
type UserLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewUserLogic(ctx context.Context, core *core.Core) *UserLogic {
	l := &UserLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

func (l *UserLogic) Register(appid, name, email, password string) (string, error) {
	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("UserLogic.Register.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}

	if exist != nil {
		return "", errors.New("UserLogic.Register.UserStore.GetByEmail.exist", i18n.ERROR_EMAIL_ALREADY_REGISTED, nil).Code(http.StatusForbidden)
	}

	salt := utils.RandomStr(10)
	userID := utils.GenUniqIDStr()

	err = l.core.Store().UserStore().Create(l.ctx, types.User{
		ID:        userID,
		Appid:     appid,
		Name:      name,
		Email:     email,
		Avatar:    l.core.Cfg().Site.DefaultAvatar,
		Salt:      salt,
		Source:    "platform",
		Password:  utils.GenUserPassword(salt, password),
		UpdatedAt: time.Now().Unix(),
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("UserLogic.Register.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return userID, nil
}

func (l *UserLogic) Login(appid, email, password string) (string, error) {
	user, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("UserLogic.Login.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}

	if user == nil || user.Password != utils.GenUserPassword(user.Salt, password) {
		return "", errors.New("UserLogic.Login.Password.check", i18n.ERROR_INVALID_ACCOUNT, err).Code(http.StatusBadRequest)
	}

	expiresAt := time.Now().AddDate(0, 1, 0).Unix()
	accessToken := utils.MD5(user.ID + utils.GenRandomID())
	err = l.core.Store().AccessTokenStore().Create(l.ctx, types.AccessToken{
		Appid:     appid,
		UserID:    user.ID,
		Token:     accessToken,
		Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
		Info:      "login",
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("UserLogic.Login.AccessTokenStore.Create", i18n.ERROR_INTERNAL, err)
	}

	// 写入 token 缓存，中间件优先走缓存校验
	meta, _ := json.Marshal(types.UserTokenMeta{
		UserID:    user.ID,
		Appid:     appid,
		ExpiresAt: expiresAt,
	})
	if err = l.core.Cache().SetEx(l.ctx, fmt.Sprintf("user:token:%s", utils.MD5(accessToken)), string(meta), time.Until(time.Unix(expiresAt, 0))); err != nil {
		slog.Error("Failed to cache user access token", slog.String("error", err.Error()), slog.String("user_id", user.ID))
	}

	return accessToken, nil
}

type UserBaseInfo struct {
	ID        string `json:"id" db:"id"`                 // 用户ID，主键
	Appid     string `json:"appid" db:"appid"`           // 租户id
	Name      string `json:"name" db:"name"`             // 用户名
	Avatar    string `json:"avatar" db:"avatar"`         // 用户头像URL
	Email     string `json:"email" db:"email"`           // 用户邮箱，唯一约束
	UpdatedAt int64  `json:"updated_at" db:"updated_at"` // 更新时间，Unix时间戳
	CreatedAt int64  `json:"created_at" db:"created_at"` // 创建时间，Unix时间戳
}

func (l *UserLogic) GetUser(appid, id string) (*UserBaseInfo, error) {
	user, err := l.core.Store().UserStore().GetUser(l.ctx, appid, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("UserLogic.GetUser.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}

	if user == nil {
		return nil, errors.New("UserLogic.GetUser.UserStore.GetUser.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	// 处理存储URL，如果是本地存储的文件则生成预签名URL
	if user.Avatar, err = utils.ProcessStorageURL(user.Avatar, l.core.FileStorage().GetStaticDomain(), l.core.FileStorage().GenGetObjectPreSignURL); err != nil {
		return nil, errors.New("UserLogic.GetUser.FileStorage.GenGetObjectPreSignURL", i18n.ERROR_INTERNAL, err)
	}

	return &UserBaseInfo{
		ID:        user.ID,
		Appid:     user.Appid,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Email:     user.Email,
		UpdatedAt: user.UpdatedAt,
		CreatedAt: user.CreatedAt,
	}, nil
}

type AuthedUserLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewAuthedUserLogic(ctx context.Context, core *core.Core) *AuthedUserLogic {
	l := &AuthedUserLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

func (l *AuthedUserLogic) UpdateUserProfile(userName, avatar string) error {
	// 检测avatar的host是否为对象存储的静态host，如果是则去除host只保留路径
	if avatar != "" {
		staticDomain := l.core.FileStorage().GetStaticDomain()
		if staticDomain != "" && strings.HasPrefix(avatar, staticDomain) {
			avatar = strings.TrimPrefix(avatar, staticDomain)
			if !strings.HasPrefix(avatar, "/") {
				avatar = "/" + avatar
			}
		}
	}

	err := l.core.Store().UserStore().UpdateUserProfile(l.ctx, l.GetUserInfo().Appid, l.GetUserInfo().User, userName, avatar)
	if err != nil {
		return errors.New("AuthedUserLogic.UpdateUserProfile.UserStore.UpdateUserProfile", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *AuthedUserLogic) UpdateUserPassword(oldPassword, newPassword string) error {
	user, err := l.core.Store().UserStore().GetUser(l.ctx, l.GetUserInfo().Appid, l.GetUserInfo().User)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("AuthedUserLogic.UpdateUserPassword.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}

	if user == nil || user.Password != utils.GenUserPassword(user.Salt, oldPassword) {
		return errors.New("AuthedUserLogic.UpdateUserPassword.check", i18n.ERROR_INVALID_ACCOUNT, nil).Code(http.StatusBadRequest)
	}

	salt := utils.RandomStr(10)
	if err = l.core.Store().UserStore().UpdateUserPassword(l.ctx, user.Appid, user.ID, salt, utils.GenUserPassword(salt, newPassword)); err != nil {
		return errors.New("AuthedUserLogic.UpdateUserPassword.UserStore.UpdateUserPassword", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
