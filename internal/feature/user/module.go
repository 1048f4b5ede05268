package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/internal/service"
	httpez "item-feedback-api/internal/transport/http/ez"
)

type Module struct {
	auth  *service.AuthService
	users *service.UserService
	log   *zap.Logger
}

func New(auth *service.AuthService, users *service.UserService, log *zap.Logger) *Module {
	return &Module{auth: auth, users: users, log: log}
}

// 用户模块先挂，注册/登录不依赖其他模块
func (m *Module) Priority() int { return 10 }

type registerIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authOut struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.UserView `json:"user"`
}

type listQ struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=10"`
}

type listOut struct {
	Users []domain.UserView `json:"users"`
	domain.PageMeta
}

// 字段缺省即不修改
type updateIn struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type updateOut struct {
	Message string           `json:"message"`
	User    *domain.UserView `json:"user,omitempty"`
}

type deleteOut struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	// --- POST /users/register ---
	httpez.RegisterAction(ez, httpez.Action[registerIn, authOut]{
		Method: http.MethodPost,
		Path:   "/users/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *registerIn) (authOut, error) {
			res, err := m.auth.Register(c.Request.Context(), service.RegisterInput{
				Email: in.Email, Password: in.Password, Name: in.Name,
			})
			if err != nil {
				return authOut{}, err
			}
			return authOut{Message: "User created successfully", Token: res.Token, User: res.User}, nil
		},
	})

	// --- POST /users/login ---
	httpez.RegisterAction(ez, httpez.Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/users/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			res, err := m.auth.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Message: "Login successful", Token: res.Token, User: res.User}, nil
		},
	})

	// --- GET /users ---
	httpez.RegisterAction(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			p, err := m.users.List(c.Request.Context(), in.Page, in.PerPage)
			if err != nil {
				return listOut{}, err
			}
			return listOut{Users: p.Items, PageMeta: p.Meta}, nil
		},
	})

	// --- GET /users/:id ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.UserView]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return m.users.Get(c.Request.Context(), c.Param("id"))
		},
	})

	// --- PUT /users/:id  只能改自己 ---
	httpez.RegisterAction(ez, httpez.Action[updateIn, updateOut]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (updateOut, error) {
			v, changed, err := m.users.Update(c.Request.Context(), httpez.Actor(c), c.Param("id"), service.UserPatch{
				Name: in.Name, Email: in.Email, Password: in.Password,
			})
			if err != nil {
				return updateOut{}, err
			}
			if !changed {
				return updateOut{Message: "No changes made"}, nil
			}
			return updateOut{Message: "User updated successfully", User: v}, nil
		},
	})

	// --- DELETE /users/:id ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, deleteOut]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (deleteOut, error) {
			id, err := m.users.Delete(c.Request.Context(), httpez.Actor(c), c.Param("id"))
			if err != nil {
				return deleteOut{}, err
			}
			return deleteOut{Message: "User deleted successfully", UserID: id}, nil
		},
	})
}
