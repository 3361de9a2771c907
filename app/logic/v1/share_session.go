package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

// ShareSessionLogic 为单个访问者对某个分享颁发并校验临时会话凭证
type ShareSessionLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewShareSessionLogic(ctx context.Context, core *core.Core) *ShareSessionLogic {
	l := &ShareSessionLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

// Issue 颁发新会话。分享必须处于有效状态（按原始字段重新计算）。
func (l *ShareSessionLogic) Issue(share *types.QRShare, ip, userAgent string) (*types.ShareSession, error) {
	now := time.Now()
	if !share.IsActive(now) {
		return nil, errors.New("ShareSessionLogic.Issue.inactive", i18n.ERROR_SHARE_INACTIVE, nil).Code(http.StatusBadRequest)
	}

	token, err := utils.GenSecureToken(32)
	if err != nil {
		return nil, errors.New("ShareSessionLogic.Issue.GenSecureToken", i18n.ERROR_INTERNAL, err)
	}

	session := types.ShareSession{
		ID:           utils.GenRandomID(),
		QRShareID:    share.ID,
		SessionToken: token,
		IPAddress:    ip,
		UserAgent:    userAgent,
		Status:       types.SHARE_SESSION_STATUS_ACTIVE,
		AccessedAt:   now.Unix(),
		ExpiresAt:    now.Add(time.Duration(l.core.Cfg().Share.SessionTTLHours) * time.Hour).Unix(),
	}

	if err = l.core.Store().ShareSessionStore().Create(l.ctx, session); err != nil {
		return nil, errors.New("ShareSessionLogic.Issue.ShareSessionStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &session, nil
}

// Validate 校验会话凭证。凭证不存在、归属其他分享或非 active 状态时
// 一律返回 not found，不向调用方泄露差别。过期会话落盘 expired 状态后
// 返回可区分的过期错误。校验不会续期。
func (l *ShareSessionLogic) Validate(token string, share *types.QRShare) (*types.ShareSession, error) {
	session, err := l.core.Store().ShareSessionStore().GetByToken(l.ctx, token)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ShareSessionLogic.Validate.ShareSessionStore.GetByToken", i18n.ERROR_INTERNAL, err)
	}

	if session == nil || session.QRShareID != share.ID || session.Status != types.SHARE_SESSION_STATUS_ACTIVE {
		return nil, errors.New("ShareSessionLogic.Validate.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if session.IsExpired(time.Now()) {
		if err = l.core.Store().ShareSessionStore().UpdateStatus(l.ctx, session.ID, types.SHARE_SESSION_STATUS_EXPIRED); err != nil {
			return nil, errors.New("ShareSessionLogic.Validate.ShareSessionStore.UpdateStatus", i18n.ERROR_INTERNAL, err)
		}
		return nil, errors.New("ShareSessionLogic.Validate.expired", i18n.ERROR_SHARE_SESSION_EXPIRED, nil).Code(http.StatusBadRequest)
	}

	return session, nil
}
