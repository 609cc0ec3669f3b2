package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/invoice"
	"invoicing-backend/internal/middleware"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	log      *zap.Logger
	renderer *invoice.Renderer
}

func New(log *zap.Logger, renderer *invoice.Renderer) *Handler {
	return &Handler{log: log, renderer: renderer}
}

// NewRouter builds the engine with recovery, request ids, access logging and
// a per-request database session in front of every route.
func NewRouter(db *gorm.DB, h *Handler) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		apperror.UseJSONNames(v)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID, middleware.AccessLog(h.log), store.Session(db))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	users := resource[models.User, *models.User, userPayload]{h: h, name: "user"}
	r.POST("/users/", users.create)
	r.GET("/users/:id", users.get)
	r.PUT("/users/:id", users.update)
	r.DELETE("/users/:id", users.remove)
	r.GET("/users/:id/posts", h.userPosts)
	r.GET("/users/:id/posts/both/", h.userWithPosts)
	r.GET("/users/:id/purchases", h.userPurchases)
	r.DELETE("/users/delete/:id", h.deleteUserWithPosts)

	posts := resource[models.Post, *models.Post, postPayload]{h: h, name: "post"}
	r.POST("/post/", posts.create)
	r.GET("/posts/:id", posts.get)
	r.PUT("/posts/:id", posts.update)
	r.DELETE("/posts/:id", posts.remove)

	r.POST("/purchases/", h.createPurchase)
	r.GET("/purchases/:id", h.getPurchase)
	r.DELETE("/purchases/:id", h.deletePurchase)

	r.GET("/invoices/:id", h.getInvoice)
	r.GET("/invoice/:id", h.invoicePDF)
	r.GET("/generate-invoice/:billing_id", h.billingPDF)

	billing := resource[models.BillingDetails, *models.BillingDetails, billingPayload]{h: h, name: "billing details"}
	r.POST("/billing/", billing.create)
	r.GET("/billing/:id", billing.get)
	r.PUT("/billing/:id", billing.update)
	r.DELETE("/billing/:id", billing.remove)

	charges := resource[models.Charge, *models.Charge, chargePayload]{h: h, name: "charge"}
	r.POST("/charges/", charges.create)
	r.GET("/charges/:id", charges.get)
	r.PUT("/charges/:id", charges.update)
	r.DELETE("/charges/:id", charges.remove)
}

// fail writes err as a JSON error body with the status its kind maps to.
// Anything that is not an *apperror.Error is reported as internal.
func (h *Handler) fail(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	if appErr.Kind == apperror.KindInternal {
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
	}
	_ = c.Error(err)

	body := gin.H{"error": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.Status(), body)
}

// pathID parses a numeric path parameter; anything else is a validation
// error.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Invalid(name, "must be a positive integer")
	}
	return uint(id), nil
}
