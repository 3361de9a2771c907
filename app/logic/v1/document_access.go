package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

type DocumentAccessLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewDocumentAccessLogic(ctx context.Context, core *core.Core) *DocumentAccessLogic {
	l := &DocumentAccessLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

func (l *DocumentAccessLogic) GrantAccess(documentID, userID, permission, notes string, expiresAt int64) error {
	user := l.GetUserInfo()

	switch permission {
	case types.PERMISSION_VIEW, types.PERMISSION_DOWNLOAD, types.PERMISSION_EDIT, types.PERMISSION_ADMIN:
	default:
		return errors.New("DocumentAccessLogic.GrantAccess.permission", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if err := l.Identification(l.lazyRolerFromDocumentID(user.Appid, documentID), types.PERMISSION_ADMIN); err != nil {
		return err
	}

	exist, err := l.core.Store().DocumentAccessStore().GetAccess(l.ctx, documentID, userID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("DocumentAccessLogic.GrantAccess.DocumentAccessStore.GetAccess", i18n.ERROR_INTERNAL, err)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if exist != nil {
			if err := l.core.Store().DocumentAccessStore().UpdatePermission(ctx, documentID, userID, permission); err != nil {
				return errors.New("DocumentAccessLogic.GrantAccess.DocumentAccessStore.UpdatePermission", i18n.ERROR_INTERNAL, err)
			}
		} else {
			err := l.core.Store().DocumentAccessStore().Create(ctx, types.DocumentAccess{
				DocumentID: documentID,
				UserID:     userID,
				Permission: permission,
				GrantedBy:  user.User,
				Notes:      notes,
				ExpiresAt:  expiresAt,
				GrantedAt:  time.Now().Unix(),
			})
			if err != nil {
				return errors.New("DocumentAccessLogic.GrantAccess.DocumentAccessStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_ACCESS_GRANTED,
			DocumentID:   documentID,
			Description:  fmt.Sprintf("granted %s access to user %s", permission, userID),
			Metadata:     types.Metadata{"grantee": userID, "permission": permission},
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("DocumentAccessLogic.GrantAccess.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 通知失败只记日志，不影响授权结果
	err = l.core.Store().NotificationStore().Create(l.ctx, types.Notification{
		Appid:      user.Appid,
		UserID:     userID,
		Type:       types.NOTIFICATION_TYPE_SHARE_RECEIVED,
		Title:      "Document access granted",
		Body:       fmt.Sprintf("You have been granted %s access to a document", permission),
		DocumentID: documentID,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		slog.Error("Failed to create grant notification", slog.String("error", err.Error()), slog.String("document_id", documentID))
	}

	return nil
}

func (l *DocumentAccessLogic) RevokeAccess(documentID, userID string) error {
	user := l.GetUserInfo()

	if err := l.Identification(l.lazyRolerFromDocumentID(user.Appid, documentID), types.PERMISSION_ADMIN); err != nil {
		return err
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().DocumentAccessStore().Delete(ctx, documentID, userID); err != nil {
			return errors.New("DocumentAccessLogic.RevokeAccess.DocumentAccessStore.Delete", i18n.ERROR_INTERNAL, err)
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_ACCESS_REVOKED,
			DocumentID:   documentID,
			Description:  fmt.Sprintf("revoked access of user %s", userID),
			Metadata:     types.Metadata{"grantee": userID},
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("DocumentAccessLogic.RevokeAccess.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *DocumentAccessLogic) ListAccess(documentID string) ([]types.DocumentAccess, error) {
	user := l.GetUserInfo()

	if err := l.Identification(l.lazyRolerFromDocumentID(user.Appid, documentID), types.PERMISSION_ADMIN); err != nil {
		return nil, err
	}

	list, err := l.core.Store().DocumentAccessStore().ListByDocument(l.ctx, documentID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentAccessLogic.ListAccess.DocumentAccessStore.ListByDocument", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
