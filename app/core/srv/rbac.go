package srv

import (
	"net/http"

	"github.com/mikespook/gorbac/v2"

	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

const (
	// 定义角色ID
	RoleAdmin      = "role-admin"
	RoleEditor     = "role-editor"
	RoleDownloader = "role-downloader"
	RoleViewer     = "role-viewer"
)

func RoleFromPermission(permission string) string {
	switch permission {
	case types.PERMISSION_ADMIN:
		return RoleAdmin
	case types.PERMISSION_EDIT:
		return RoleEditor
	case types.PERMISSION_DOWNLOAD:
		return RoleDownloader
	default:
		return RoleViewer
	}
}

func SetupRBACSrv() *RBACSrv {
	// 创建一个新的RBAC实例
	rbac := gorbac.New()

	// 创建权限
	pAdmin := gorbac.NewStdPermission(types.PERMISSION_ADMIN)
	pEdit := gorbac.NewStdPermission(types.PERMISSION_EDIT)
	pDownload := gorbac.NewStdPermission(types.PERMISSION_DOWNLOAD)
	pView := gorbac.NewStdPermission(types.PERMISSION_VIEW)

	// 创建角色并分配权限
	roleAdmin := gorbac.NewStdRole(RoleAdmin)
	roleAdmin.Assign(pAdmin)

	roleEditor := gorbac.NewStdRole(RoleEditor)
	roleEditor.Assign(pEdit)

	roleDownloader := gorbac.NewStdRole(RoleDownloader)
	roleDownloader.Assign(pDownload)

	roleViewer := gorbac.NewStdRole(RoleViewer)
	roleViewer.Assign(pView)

	// 将角色添加到RBAC实例
	rbac.Add(roleAdmin)
	rbac.Add(roleEditor)
	rbac.Add(roleDownloader)
	rbac.Add(roleViewer)

	// 设置角色继承关系
	rbac.SetParent(RoleDownloader, RoleViewer) // 可下载则可预览
	rbac.SetParent(RoleEditor, RoleDownloader) // 编辑者继承下载权限
	rbac.SetParent(RoleAdmin, RoleEditor)      // 管理者继承编辑者的权限

	return &RBACSrv{
		rbac: rbac,
	}
}

type RBACSrv struct {
	rbac *gorbac.RBAC
}

// CheckPermission 检查角色是否有某权限
func (a *RBACSrv) CheckPermission(roleID, permissionID string) bool {
	return a.rbac.IsGranted(roleID, gorbac.NewStdPermission(permissionID), nil)
}

type RoleObject interface {
	GetOwner() (string, error)
}

type LazyRoler struct {
	f      func() (string, error)
	userID string
}

func (s *LazyRoler) GetOwner() (string, error) {
	if s.userID == "" {
		var err error
		if s.userID, err = s.f(); err != nil {
			return "", err
		}
	}
	return s.userID, nil
}

func NewRolerWithLazyload(f func() (string, error)) *LazyRoler {
	return &LazyRoler{
		f: f,
	}
}

type RoleUser interface {
	GetRole() string
	GetUser() string
}

// Check 资源属主直接放行，否则检测用户在该资源上被授予的角色
func (a *RBACSrv) Check(user RoleUser, obj RoleObject, permissionID string) *errors.CustomizedError {
	if !a.CheckPermission(user.GetRole(), permissionID) {
		resourceUser, err := obj.GetOwner()
		if err != nil {
			return errors.Trace("RBACSrv.Check", err)
		}
		if user.GetUser() != resourceUser {
			return errors.New("RBACSrv.Check.Owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
		}
	}
	return nil
}
