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
	"github.com/neodocs/neodocs/pkg/utils"
)

type DocumentRequestLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewDocumentRequestLogic(ctx context.Context, core *core.Core) *DocumentRequestLogic {
	l := &DocumentRequestLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

// CreateRequest 向另一个用户索取文档
func (l *DocumentRequestLogic) CreateRequest(requesteeID, title, description string) (*types.DocumentRequest, error) {
	user := l.GetUserInfo()

	if title == "" {
		return nil, errors.New("DocumentRequestLogic.CreateRequest.title", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if requesteeID == user.User {
		return nil, errors.New("DocumentRequestLogic.CreateRequest.self", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	requestee, err := l.core.Store().UserStore().GetUser(l.ctx, user.Appid, requesteeID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentRequestLogic.CreateRequest.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}

	if requestee == nil {
		return nil, errors.New("DocumentRequestLogic.CreateRequest.UserStore.GetUser.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	request := types.DocumentRequest{
		ID:          utils.GenRandomID(),
		Appid:       user.Appid,
		RequesterID: user.User,
		RequesteeID: requesteeID,
		Title:       title,
		Description: description,
		Status:      types.DOCUMENT_REQUEST_STATUS_PENDING,
		UpdatedAt:   time.Now().Unix(),
		CreatedAt:   time.Now().Unix(),
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().DocumentRequestStore().Create(ctx, request); err != nil {
			return errors.New("DocumentRequestLogic.CreateRequest.DocumentRequestStore.Create", i18n.ERROR_INTERNAL, err)
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_DOCUMENT_REQUESTED,
			RequestID:    request.ID,
			Description:  fmt.Sprintf("requested document %q from user %s", title, requesteeID),
			Metadata:     types.Metadata{"requestee": requesteeID, "title": title},
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("DocumentRequestLogic.CreateRequest.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = l.core.Store().NotificationStore().Create(l.ctx, types.Notification{
		Appid:     user.Appid,
		UserID:    requesteeID,
		Type:      types.NOTIFICATION_TYPE_REQUEST_RECEIVED,
		Title:     "Document requested",
		Body:      fmt.Sprintf("%s requested document %q from you", user.User, title),
		RequestID: request.ID,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		slog.Error("Failed to create request notification", slog.String("error", err.Error()), slog.String("request_id", request.ID))
	}

	return &request, nil
}

// RespondRequest 批准或拒绝索取请求。批准时可附带一个文档，直接生成点对点分享。
func (l *DocumentRequestLogic) RespondRequest(requestID, action, responseMessage, documentID string) error {
	user := l.GetUserInfo()

	if action != types.REQUEST_RESPONSE_APPROVE && action != types.REQUEST_RESPONSE_DECLINE {
		return errors.New("DocumentRequestLogic.RespondRequest.action", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	request, err := l.core.Store().DocumentRequestStore().GetRequest(l.ctx, user.Appid, requestID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("DocumentRequestLogic.RespondRequest.DocumentRequestStore.GetRequest", i18n.ERROR_INTERNAL, err)
	}

	if request == nil {
		return errors.New("DocumentRequestLogic.RespondRequest.DocumentRequestStore.GetRequest.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if request.RequesteeID != user.User {
		return errors.New("DocumentRequestLogic.RespondRequest.requestee", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if request.Status != types.DOCUMENT_REQUEST_STATUS_PENDING {
		return errors.New("DocumentRequestLogic.RespondRequest.status", i18n.ERROR_REQUEST_ALREADY_RESPONDED, nil).Code(http.StatusForbidden)
	}

	status := types.DOCUMENT_REQUEST_STATUS_DECLINED
	if action == types.REQUEST_RESPONSE_APPROVE {
		status = types.DOCUMENT_REQUEST_STATUS_APPROVED
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().DocumentRequestStore().Respond(ctx, user.Appid, requestID, status, responseMessage, time.Now().Unix()); err != nil {
			return errors.New("DocumentRequestLogic.RespondRequest.DocumentRequestStore.Respond", i18n.ERROR_INTERNAL, err)
		}

		if action == types.REQUEST_RESPONSE_APPROVE && documentID != "" {
			doc, err := l.core.Store().DocumentStore().GetDocument(ctx, user.Appid, documentID)
			if err != nil && err != sql.ErrNoRows {
				return errors.New("DocumentRequestLogic.RespondRequest.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
			}
			if doc == nil || doc.OwnerID != user.User {
				return errors.New("DocumentRequestLogic.RespondRequest.DocumentStore.GetDocument.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil).Code(http.StatusBadRequest)
			}

			_, err = l.core.Store().DocumentShareStore().Create(ctx, types.DocumentShare{
				DocumentID: documentID,
				SharedBy:   user.User,
				SharedWith: request.RequesterID,
				Permission: types.PERMISSION_VIEW,
				Status:     types.DOCUMENT_SHARE_STATUS_PENDING,
				Message:    responseMessage,
				UpdatedAt:  time.Now().Unix(),
				CreatedAt:  time.Now().Unix(),
			})
			if err != nil {
				return errors.New("DocumentRequestLogic.RespondRequest.DocumentShareStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_REQUEST_RESPONDED,
			RequestID:    requestID,
			DocumentID:   documentID,
			Description:  fmt.Sprintf("%sd document request from user %s", action, request.RequesterID),
			Metadata:     types.Metadata{"action": action, "requester": request.RequesterID},
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("DocumentRequestLogic.RespondRequest.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = l.core.Store().NotificationStore().Create(l.ctx, types.Notification{
		Appid:      user.Appid,
		UserID:     request.RequesterID,
		Type:       types.NOTIFICATION_TYPE_REQUEST_RESPONDED,
		Title:      "Document request responded",
		Body:       fmt.Sprintf("%s %sd your document request %q", user.User, action, request.Title),
		DocumentID: documentID,
		RequestID:  requestID,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		slog.Error("Failed to create respond notification", slog.String("error", err.Error()), slog.String("request_id", requestID))
	}

	return nil
}

func (l *DocumentRequestLogic) ListSent(page, pageSize uint64) ([]types.DocumentRequest, error) {
	user := l.GetUserInfo()
	list, err := l.core.Store().DocumentRequestStore().List(l.ctx, types.GetDocumentRequestOptions{
		Appid:       user.Appid,
		RequesterID: user.User,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentRequestLogic.ListSent.DocumentRequestStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *DocumentRequestLogic) ListReceived(page, pageSize uint64) ([]types.DocumentRequest, error) {
	user := l.GetUserInfo()
	list, err := l.core.Store().DocumentRequestStore().List(l.ctx, types.GetDocumentRequestOptions{
		Appid:       user.Appid,
		RequesteeID: user.User,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentRequestLogic.ListReceived.DocumentRequestStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
