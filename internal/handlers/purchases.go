package handlers

import (
	"net/http"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/invoice"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// createPurchase stores the purchase and its derived invoice atomically and
// returns the purchase with the invoice nested.
func (h *Handler) createPurchase(c *gin.Context) {
	var body purchasePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, apperror.Validation(err))
		return
	}
	db := store.DB(c)
	p, err := body.toModel(db)
	if err != nil {
		h.fail(c, err)
		return
	}
	inv, err := invoice.Checkout(db, &p)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("invoice derived",
		zap.Uint("purchase_id", p.ID),
		zap.Uint("invoice_id", inv.ID),
		zap.String("total", inv.Total.String()))
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) getPurchase(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var p models.Purchase
	if err := store.DB(c).Preload("Invoice").First(&p, id).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "purchase"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// deletePurchase removes a purchase together with its invoice.
func (h *Handler) deletePurchase(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = store.DB(c).Transaction(func(tx *gorm.DB) error {
		var p models.Purchase
		if err := tx.First(&p, id).Error; err != nil {
			return apperror.FromDB(err, "purchase")
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return apperror.FromDB(err, "invoice")
		}
		return apperror.FromDB(tx.Delete(&p).Error, "purchase")
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var inv models.Invoice
	if err := store.DB(c).First(&inv, id).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "invoice"))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) invoicePDF(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := store.DB(c)
	var inv models.Invoice
	if err := db.First(&inv, id).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "invoice"))
		return
	}
	var p models.Purchase
	if err := db.First(&p, inv.PurchaseID).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "purchase"))
		return
	}
	doc, err := h.renderer.RenderInvoice(inv, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendDocument(c, doc)
}

func (h *Handler) billingPDF(c *gin.Context) {
	id, err := pathID(c, "billing_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var b models.BillingDetails
	if err := store.DB(c).First(&b, id).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "billing details"))
		return
	}
	doc, err := h.renderer.RenderBilling(b)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendDocument(c, doc)
}

func sendDocument(c *gin.Context, doc invoice.Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
