package v1

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/app/core/srv"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type DocumentLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewDocumentLogic(ctx context.Context, core *core.Core) *DocumentLogic {
	l := &DocumentLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

type CreateDocumentArgs struct {
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	FileSize         int64         `json:"file_size"`
	OriginalFilename string        `json:"original_filename"`
	TrustLevel       string        `json:"trust_level"`
	Tags             types.TagList `json:"tags"`
}

type CreateDocumentResult struct {
	Document *types.Document     `json:"document"`
	Upload   core.UploadFileMeta `json:"upload"`
}

// CreateDocument 先落元数据，文件本体由客户端拿着预签名地址直传对象存储
func (l *DocumentLogic) CreateDocument(args CreateDocumentArgs) (*CreateDocumentResult, error) {
	user := l.GetUserInfo()

	if args.Title == "" || args.OriginalFilename == "" {
		return nil, errors.New("DocumentLogic.CreateDocument.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if args.TrustLevel == "" {
		args.TrustLevel = types.DOCUMENT_TRUST_USER_UPLOADED
	}

	docID := utils.GenRandomID()
	fileType := strings.TrimPrefix(filepath.Ext(args.OriginalFilename), ".")
	filePath := fmt.Sprintf("/document/%s/%s/%s.%s", user.Appid, user.User, docID, fileType)

	uploadMeta, err := l.core.FileStorage().GenUploadFileMeta(filePath, args.FileSize)
	if err != nil {
		return nil, errors.New("DocumentLogic.CreateDocument.FileStorage.GenUploadFileMeta", i18n.ERROR_INTERNAL, err)
	}

	doc := types.Document{
		ID:               docID,
		Appid:            user.Appid,
		OwnerID:          user.User,
		Title:            args.Title,
		Description:      args.Description,
		FilePath:         filePath,
		FileSize:         args.FileSize,
		FileType:         fileType,
		OriginalFilename: args.OriginalFilename,
		TrustLevel:       args.TrustLevel,
		Status:           types.DOCUMENT_STATUS_ACTIVE,
		Tags:             args.Tags,
		UpdatedAt:        time.Now().Unix(),
		CreatedAt:        time.Now().Unix(),
	}

	if err = l.core.Store().DocumentStore().Create(l.ctx, doc); err != nil {
		return nil, errors.New("DocumentLogic.CreateDocument.DocumentStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &CreateDocumentResult{
		Document: &doc,
		Upload:   uploadMeta,
	}, nil
}

func (l *DocumentLogic) GetDocument(id string) (*types.Document, error) {
	user := l.GetUserInfo()
	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, user.Appid, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentLogic.GetDocument.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
	}

	if doc == nil {
		return nil, errors.New("DocumentLogic.GetDocument.DocumentStore.GetDocument.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if doc.OwnerID != user.User {
		access, err := l.core.Store().DocumentAccessStore().GetAccess(l.ctx, id, user.User)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("DocumentLogic.GetDocument.DocumentAccessStore.GetAccess", i18n.ERROR_INTERNAL, err)
		}
		if access == nil || (access.ExpiresAt > 0 && access.ExpiresAt < time.Now().Unix()) {
			return nil, errors.New("DocumentLogic.GetDocument.access", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
		}
	}

	return doc, nil
}

// GetDocumentDownloadURL 返回文件的预签名下载地址
func (l *DocumentLogic) GetDocumentDownloadURL(id string) (string, error) {
	doc, err := l.GetDocument(id)
	if err != nil {
		return "", err
	}

	user := l.GetUserInfo()
	if doc.OwnerID != user.User {
		access, err := l.core.Store().DocumentAccessStore().GetAccess(l.ctx, id, user.User)
		if err != nil && err != sql.ErrNoRows {
			return "", errors.New("DocumentLogic.GetDocumentDownloadURL.DocumentAccessStore.GetAccess", i18n.ERROR_INTERNAL, err)
		}
		if access == nil || !l.core.Srv().RBAC().CheckPermission(srv.RoleFromPermission(access.Permission), types.PERMISSION_DOWNLOAD) {
			return "", errors.New("DocumentLogic.GetDocumentDownloadURL.permission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
		}
	}

	url, err := l.core.FileStorage().GenGetObjectPreSignURL(doc.FilePath)
	if err != nil {
		return "", errors.New("DocumentLogic.GetDocumentDownloadURL.FileStorage.GenGetObjectPreSignURL", i18n.ERROR_INTERNAL, err)
	}
	return url, nil
}

func (l *DocumentLogic) UpdateDocument(id string, args types.UpdateDocumentArgs) error {
	user := l.GetUserInfo()
	if err := l.Identification(l.lazyRolerFromDocumentID(user.Appid, id), types.PERMISSION_EDIT); err != nil {
		return err
	}

	if err := l.core.Store().DocumentStore().Update(l.ctx, user.Appid, id, args); err != nil {
		return errors.New("DocumentLogic.UpdateDocument.DocumentStore.Update", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// DeleteDocument 归档而非物理删除，对象存储中的文件保留
func (l *DocumentLogic) DeleteDocument(id string) error {
	user := l.GetUserInfo()
	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, user.Appid, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("DocumentLogic.DeleteDocument.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
	}

	if doc == nil {
		return errors.New("DocumentLogic.DeleteDocument.DocumentStore.GetDocument.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if doc.OwnerID != user.User {
		return errors.New("DocumentLogic.DeleteDocument.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if err = l.core.Store().DocumentStore().UpdateStatus(l.ctx, user.Appid, id, types.DOCUMENT_STATUS_ARCHIVED); err != nil {
		return errors.New("DocumentLogic.DeleteDocument.DocumentStore.UpdateStatus", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *DocumentLogic) ListDocuments(keyword, status string, page, pageSize uint64) ([]types.Document, int64, error) {
	user := l.GetUserInfo()
	opts := types.GetDocumentOptions{
		Appid:   user.Appid,
		OwnerID: user.User,
		Status:  status,
		Keyword: keyword,
	}

	list, err := l.core.Store().DocumentStore().ListDocuments(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("DocumentLogic.ListDocuments.DocumentStore.ListDocuments", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().DocumentStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("DocumentLogic.ListDocuments.DocumentStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return list, total, nil
}
