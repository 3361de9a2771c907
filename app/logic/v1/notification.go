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
)

type NotificationLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewNotificationLogic(ctx context.Context, core *core.Core) *NotificationLogic {
	l := &NotificationLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

func (l *NotificationLogic) ListNotifications(notificationType string, unreadOnly bool, page, pageSize uint64) ([]types.Notification, error) {
	user := l.GetUserInfo()
	list, err := l.core.Store().NotificationStore().List(l.ctx, types.GetNotificationOptions{
		Appid:      user.Appid,
		UserID:     user.User,
		Type:       notificationType,
		UnreadOnly: unreadOnly,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("NotificationLogic.ListNotifications.NotificationStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *NotificationLogic) UnreadCount() (int64, error) {
	user := l.GetUserInfo()
	total, err := l.core.Store().NotificationStore().TotalUnread(l.ctx, user.Appid, user.User)
	if err != nil {
		return 0, errors.New("NotificationLogic.UnreadCount.NotificationStore.TotalUnread", i18n.ERROR_INTERNAL, err)
	}
	return total, nil
}

func (l *NotificationLogic) MarkRead(id int64) error {
	user := l.GetUserInfo()

	notification, err := l.core.Store().NotificationStore().GetNotification(l.ctx, user.Appid, user.User, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("NotificationLogic.MarkRead.NotificationStore.GetNotification", i18n.ERROR_INTERNAL, err)
	}

	if notification == nil {
		return errors.New("NotificationLogic.MarkRead.NotificationStore.GetNotification.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if notification.IsRead {
		return nil
	}

	if err = l.core.Store().NotificationStore().MarkRead(l.ctx, user.Appid, user.User, id, time.Now().Unix()); err != nil {
		return errors.New("NotificationLogic.MarkRead.NotificationStore.MarkRead", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *NotificationLogic) MarkAllRead() error {
	user := l.GetUserInfo()
	if err := l.core.Store().NotificationStore().MarkAllRead(l.ctx, user.Appid, user.User, time.Now().Unix()); err != nil {
		return errors.New("NotificationLogic.MarkAllRead.NotificationStore.MarkAllRead", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
