package comment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/internal/service"
	httpez "item-feedback-api/internal/transport/http/ez"
)

type Module struct {
	svc *service.CommentService
	log *zap.Logger
}

func New(svc *service.CommentService, log *zap.Logger) *Module {
	return &Module{svc: svc, log: log}
}

func (m *Module) Priority() int { return 30 }

type createIn struct {
	UserID  string `json:"user_id" binding:"required"`
	ItemID  string `json:"item_id" binding:"required"`
	Content string `json:"content"`
}

type createOut struct {
	Message   string `json:"message"`
	CommentID string `json:"comment_id"`
}

type listQ struct {
	UserID  string `form:"user_id"`
	ItemID  string `form:"item_id"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
}

type listOut struct {
	Comments []domain.Comment `json:"comments"`
	domain.PageMeta
}

type updateIn struct {
	Content *string `json:"content"`
}

type updateOut struct {
	Message string          `json:"message"`
	Comment *domain.Comment `json:"comment,omitempty"`
}

type deleteOut struct {
	Message   string `json:"message"`
	CommentID string `json:"comment_id"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	httpez.RegisterAction(ez, httpez.Action[createIn, createOut]{
		Method: http.MethodPost,
		Path:   "/comments",
		Binder: httpez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createIn) (createOut, error) {
			id, err := m.svc.Create(c.Request.Context(), httpez.Actor(c), service.NewComment{
				UserID: in.UserID, ItemID: in.ItemID, Content: in.Content,
			})
			if err != nil {
				return createOut{}, err
			}
			return createOut{Message: "Comment created successfully", CommentID: id}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/comments",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			p, err := m.svc.List(c.Request.Context(), service.ListQuery{
				UserID: in.UserID, ItemID: in.ItemID, Page: in.Page, PerPage: in.PerPage,
			})
			if err != nil {
				return listOut{}, err
			}
			return listOut{Comments: p.Items, PageMeta: p.Meta}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Comment]{
		Method: http.MethodGet,
		Path:   "/comments/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Comment, error) {
			return m.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[updateIn, updateOut]{
		Method: http.MethodPut,
		Path:   "/comments/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (updateOut, error) {
			cm, changed, err := m.svc.Update(c.Request.Context(), httpez.Actor(c), c.Param("id"), in.Content)
			if err != nil {
				return updateOut{}, err
			}
			if !changed {
				return updateOut{Message: "No changes made"}, nil
			}
			return updateOut{Message: "Comment updated successfully", Comment: cm}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, deleteOut]{
		Method: http.MethodDelete,
		Path:   "/comments/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (deleteOut, error) {
			id, err := m.svc.Delete(c.Request.Context(), httpez.Actor(c), c.Param("id"))
			if err != nil {
				return deleteOut{}, err
			}
			return deleteOut{Message: "Comment deleted successfully", CommentID: id}, nil
		},
	})
}
