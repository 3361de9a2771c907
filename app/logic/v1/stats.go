package v1

import (
	"context"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

type StatsLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewStatsLogic(ctx context.Context, core *core.Core) *StatsLogic {
	l := &StatsLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

type SharingStats struct {
	TotalQRShares       int64 `json:"total_qr_shares"`
	ActiveQRShares      int64 `json:"active_qr_shares"`
	TotalAccesses       int64 `json:"total_accesses"`
	SharedByMe          int64 `json:"shared_by_me"`
	PendingRequests     int64 `json:"pending_requests"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// GetSharingStats 分享总览，供客户端 dashboard 展示
func (l *StatsLogic) GetSharingStats() (*SharingStats, error) {
	user := l.GetUserInfo()
	stats := &SharingStats{}

	var err error
	if stats.TotalQRShares, err = l.core.Store().QRShareStore().Total(l.ctx, types.GetQRShareOptions{
		Appid:     user.Appid,
		CreatedBy: user.User,
	}); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.QRShareStore.Total", i18n.ERROR_INTERNAL, err)
	}

	if stats.ActiveQRShares, err = l.core.Store().QRShareStore().Total(l.ctx, types.GetQRShareOptions{
		Appid:     user.Appid,
		CreatedBy: user.User,
		Status:    types.QR_SHARE_STATUS_ACTIVE,
	}); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.QRShareStore.TotalActive", i18n.ERROR_INTERNAL, err)
	}

	if stats.TotalAccesses, err = l.core.Store().ActivityStore().Total(l.ctx, types.GetActivityOptions{
		Appid:        user.Appid,
		UserID:       user.User,
		ActivityType: types.ACTIVITY_QR_ACCESSED,
	}); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.ActivityStore.Total", i18n.ERROR_INTERNAL, err)
	}

	if stats.SharedByMe, err = l.core.Store().DocumentShareStore().Total(l.ctx, types.GetDocumentShareOptions{
		SharedBy: user.User,
	}); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.DocumentShareStore.Total", i18n.ERROR_INTERNAL, err)
	}

	if stats.PendingRequests, err = l.core.Store().DocumentRequestStore().Total(l.ctx, types.GetDocumentRequestOptions{
		Appid:       user.Appid,
		RequesteeID: user.User,
		Status:      types.DOCUMENT_REQUEST_STATUS_PENDING,
	}); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.DocumentRequestStore.Total", i18n.ERROR_INTERNAL, err)
	}

	if stats.UnreadNotifications, err = l.core.Store().NotificationStore().TotalUnread(l.ctx, user.Appid, user.User); err != nil {
		return nil, errors.New("StatsLogic.GetSharingStats.NotificationStore.TotalUnread", i18n.ERROR_INTERNAL, err)
	}

	return stats, nil
}
