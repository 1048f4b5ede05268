package rating

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/internal/service"
	httpez "item-feedback-api/internal/transport/http/ez"
)

type Module struct {
	svc *service.RatingService
	log *zap.Logger
}

func New(svc *service.RatingService, log *zap.Logger) *Module {
	return &Module{svc: svc, log: log}
}

func (m *Module) Priority() int { return 20 }

type createIn struct {
	UserID      string   `json:"user_id"     binding:"required"`
	ItemID      string   `json:"item_id"     binding:"required"`
	Rating      *float64 `json:"rating"      binding:"required"`
	Description *string  `json:"description"`
}

type createOut struct {
	Message  string `json:"message"`
	RatingID string `json:"rating_id"`
}

type listQ struct {
	UserID  string `form:"user_id"`
	ItemID  string `form:"item_id"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
}

type listOut struct {
	Ratings []domain.Rating `json:"ratings"`
	domain.PageMeta
}

type updateIn struct {
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
}

type updateOut struct {
	Message string         `json:"message"`
	Rating  *domain.Rating `json:"rating,omitempty"`
}

type deleteOut struct {
	Message  string `json:"message"`
	RatingID string `json:"rating_id"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	// --- POST /ratings  body.user_id 必须是 token 本人 ---
	httpez.RegisterAction(ez, httpez.Action[createIn, createOut]{
		Method: http.MethodPost,
		Path:   "/ratings",
		Binder: httpez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createIn) (createOut, error) {
			id, err := m.svc.Create(c.Request.Context(), httpez.Actor(c), service.NewRating{
				UserID:      in.UserID,
				ItemID:      in.ItemID,
				Score:       *in.Rating,
				Description: in.Description,
			})
			if err != nil {
				return createOut{}, err
			}
			return createOut{Message: "Rating created successfully", RatingID: id}, nil
		},
	})

	// --- GET /ratings?user_id=&item_id=&page=&per_page= ---
	httpez.RegisterAction(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/ratings",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			p, err := m.svc.List(c.Request.Context(), service.ListQuery{
				UserID: in.UserID, ItemID: in.ItemID, Page: in.Page, PerPage: in.PerPage,
			})
			if err != nil {
				return listOut{}, err
			}
			return listOut{Ratings: p.Items, PageMeta: p.Meta}, nil
		},
	})

	// --- GET /ratings/:id ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Rating]{
		Method: http.MethodGet,
		Path:   "/ratings/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Rating, error) {
			return m.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	// --- PUT /ratings/:id ---
	httpez.RegisterAction(ez, httpez.Action[updateIn, updateOut]{
		Method: http.MethodPut,
		Path:   "/ratings/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (updateOut, error) {
			r, changed, err := m.svc.Update(c.Request.Context(), httpez.Actor(c), c.Param("id"), service.RatingPatch{
				Score: in.Rating, Description: in.Description,
			})
			if err != nil {
				return updateOut{}, err
			}
			if !changed {
				return updateOut{Message: "No changes made"}, nil
			}
			return updateOut{Message: "Rating updated successfully", Rating: r}, nil
		},
	})

	// --- DELETE /ratings/:id ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, deleteOut]{
		Method: http.MethodDelete,
		Path:   "/ratings/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (deleteOut, error) {
			id, err := m.svc.Delete(c.Request.Context(), httpez.Actor(c), c.Param("id"))
			if err != nil {
				return deleteOut{}, err
			}
			return deleteOut{Message: "Rating deleted successfully", RatingID: id}, nil
		},
	})
}
