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

type DocumentShareLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewDocumentShareLogic(ctx context.Context, core *core.Core) *DocumentShareLogic {
	l := &DocumentShareLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

// ShareDocument 将文档点对点分享给同租户的另一个用户，待对方接受
func (l *DocumentShareLogic) ShareDocument(documentID, sharedWith, permission, message string, expiresAt int64) (*types.DocumentShare, error) {
	user := l.GetUserInfo()

	if sharedWith == user.User {
		return nil, errors.New("DocumentShareLogic.ShareDocument.self", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	switch permission {
	case types.PERMISSION_VIEW, types.PERMISSION_DOWNLOAD, types.PERMISSION_EDIT:
	default:
		return nil, errors.New("DocumentShareLogic.ShareDocument.permission", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, user.Appid, documentID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentShareLogic.ShareDocument.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
	}

	if doc == nil {
		return nil, errors.New("DocumentShareLogic.ShareDocument.DocumentStore.GetDocument.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if doc.OwnerID != user.User {
		return nil, errors.New("DocumentShareLogic.ShareDocument.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	exist, err := l.core.Store().DocumentShareStore().GetByDocumentAndUser(l.ctx, documentID, sharedWith)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentShareLogic.ShareDocument.DocumentShareStore.GetByDocumentAndUser", i18n.ERROR_INTERNAL, err)
	}

	if exist != nil && (exist.Status == types.DOCUMENT_SHARE_STATUS_PENDING || exist.Status == types.DOCUMENT_SHARE_STATUS_ACCEPTED) {
		return nil, errors.New("DocumentShareLogic.ShareDocument.exist", i18n.ERROR_ALREADY_SHARED, nil).Code(http.StatusForbidden)
	}

	share := types.DocumentShare{
		DocumentID: documentID,
		SharedBy:   user.User,
		SharedWith: sharedWith,
		Permission: permission,
		Status:     types.DOCUMENT_SHARE_STATUS_PENDING,
		Message:    message,
		ExpiresAt:  expiresAt,
		UpdatedAt:  time.Now().Unix(),
		CreatedAt:  time.Now().Unix(),
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		id, err := l.core.Store().DocumentShareStore().Create(ctx, share)
		if err != nil {
			return errors.New("DocumentShareLogic.ShareDocument.DocumentShareStore.Create", i18n.ERROR_INTERNAL, err)
		}
		share.ID = id

		err = l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_DOCUMENT_SHARED,
			DocumentID:   documentID,
			Description:  fmt.Sprintf("shared document with user %s", sharedWith),
			Metadata:     types.Metadata{"shared_with": sharedWith, "permission": permission},
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("DocumentShareLogic.ShareDocument.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = l.core.Store().NotificationStore().Create(l.ctx, types.Notification{
		Appid:      user.Appid,
		UserID:     sharedWith,
		Type:       types.NOTIFICATION_TYPE_SHARE_RECEIVED,
		Title:      "Document shared with you",
		Body:       fmt.Sprintf("%s shared document %q with you", user.User, doc.Title),
		DocumentID: documentID,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		slog.Error("Failed to create share notification", slog.String("error", err.Error()), slog.String("document_id", documentID))
	}

	return &share, nil
}

// RespondShare 接受或拒绝分享。接受后写入 access 授权行。
func (l *DocumentShareLogic) RespondShare(shareID int64, accept bool) error {
	user := l.GetUserInfo()

	share, err := l.core.Store().DocumentShareStore().GetShare(l.ctx, shareID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("DocumentShareLogic.RespondShare.DocumentShareStore.GetShare", i18n.ERROR_INTERNAL, err)
	}

	if share == nil {
		return errors.New("DocumentShareLogic.RespondShare.DocumentShareStore.GetShare.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if share.SharedWith != user.User {
		return errors.New("DocumentShareLogic.RespondShare.recipient", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if share.Status != types.DOCUMENT_SHARE_STATUS_PENDING {
		return errors.New("DocumentShareLogic.RespondShare.status", i18n.ERROR_REQUEST_ALREADY_RESPONDED, nil).Code(http.StatusForbidden)
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		status := types.DOCUMENT_SHARE_STATUS_DECLINED
		if accept {
			status = types.DOCUMENT_SHARE_STATUS_ACCEPTED
		}

		if err := l.core.Store().DocumentShareStore().UpdateStatus(ctx, shareID, status); err != nil {
			return errors.New("DocumentShareLogic.RespondShare.DocumentShareStore.UpdateStatus", i18n.ERROR_INTERNAL, err)
		}

		if accept {
			err := l.core.Store().DocumentAccessStore().Create(ctx, types.DocumentAccess{
				DocumentID: share.DocumentID,
				UserID:     user.User,
				Permission: share.Permission,
				GrantedBy:  share.SharedBy,
				Notes:      "peer share",
				ExpiresAt:  share.ExpiresAt,
				GrantedAt:  time.Now().Unix(),
			})
			if err != nil {
				return errors.New("DocumentShareLogic.RespondShare.DocumentAccessStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}
		return nil
	})
}

func (l *DocumentShareLogic) ListSharedWithMe(page, pageSize uint64) ([]types.DocumentShare, error) {
	list, err := l.core.Store().DocumentShareStore().List(l.ctx, types.GetDocumentShareOptions{
		SharedWith: l.GetUserInfo().User,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentShareLogic.ListSharedWithMe.DocumentShareStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *DocumentShareLogic) ListSharedByMe(page, pageSize uint64) ([]types.DocumentShare, error) {
	list, err := l.core.Store().DocumentShareStore().List(l.ctx, types.GetDocumentShareOptions{
		SharedBy: l.GetUserInfo().User,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentShareLogic.ListSharedByMe.DocumentShareStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
