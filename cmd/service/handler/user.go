package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type RegisterRequest struct {
	UserName string `json:"user_name" form:"user_name" binding:"required,max=32"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=64"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

func (s *HttpSrv) Register(c *gin.Context) {
	var (
		err error
		req RegisterRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	appid, exist := v1.InjectAppid(c)
	if !exist {
		appid = s.Core.DefaultAppid()
	}

	userID, err := v1.NewUserLogic(c, s.Core).Register(appid, req.UserName, req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, RegisterResponse{UserID: userID})
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var (
		err error
		req LoginRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	appid, exist := v1.InjectAppid(c)
	if !exist {
		appid = s.Core.DefaultAppid()
	}

	token, err := v1.NewUserLogic(c, s.Core).Login(appid, req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, LoginResponse{Token: token})
}

type GetUserResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Appid    string `json:"appid"`
}

func (s *HttpSrv) GetUser(c *gin.Context) {
	claims, _ := v1.InjectTokenClaim(c)

	user, err := v1.NewUserLogic(c, s.Core).GetUser(claims.Appid, claims.User)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, GetUserResponse{
		UserID:   user.ID,
		UserName: user.Name,
		Avatar:   user.Avatar,
		Email:    user.Email,
		Appid:    user.Appid,
	})
}

type UpdateUserProfileRequest struct {
	UserName string `json:"user_name" form:"user_name" binding:"required,max=32"`
	Avatar   string `json:"avatar" form:"avatar"`
}

func (s *HttpSrv) UpdateUserProfile(c *gin.Context) {
	var (
		err error
		req UpdateUserProfileRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err = v1.NewAuthedUserLogic(c, s.Core).UpdateUserProfile(req.UserName, req.Avatar)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type UpdateUserPasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=8,max=64"`
}

func (s *HttpSrv) UpdateUserPassword(c *gin.Context) {
	var (
		err error
		req UpdateUserPasswordRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err = v1.NewAuthedUserLogic(c, s.Core).UpdateUserPassword(req.OldPassword, req.NewPassword)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type CreateAccessTokenRequest struct {
	Info string `json:"info" form:"info" binding:"max=128"`
}

type CreateAccessTokenResponse struct {
	Token string `json:"token"`
}

func (s *HttpSrv) CreateAccessToken(c *gin.Context) {
	var (
		err error
		req CreateAccessTokenRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	token, err := v1.NewAuthedUserLogic(c, s.Core).CreateAccessToken(req.Info)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateAccessTokenResponse{Token: token})
}

type GetUserAccessTokensRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	Pagesize uint64 `json:"pagesize" form:"pagesize" binding:"required"`
}

type GetUserAccessTokensResponse struct {
	List []types.AccessToken `json:"list"`
}

func (s *HttpSrv) GetUserAccessTokens(c *gin.Context) {
	var (
		err error
		req GetUserAccessTokensRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, err := v1.NewAuthedUserLogic(c, s.Core).GetAccessTokens(req.Page, req.Pagesize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, GetUserAccessTokensResponse{List: list})
}

type DeleteAccessTokenRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

func (s *HttpSrv) DeleteAccessToken(c *gin.Context) {
	var (
		err error
		req DeleteAccessTokenRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewAuthedUserLogic(c, s.Core).DelAccessToken(req.ID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
