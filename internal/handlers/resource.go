package handlers

import (
	"net/http"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is satisfied by pointers to entities that embed models.Base.
type record[M any] interface {
	*M
	BaseRecord() *models.Base
}

// payload is a request body that turns into an entity. toModel runs checks
// binding tags cannot express, such as referenced rows existing.
type payload[M any] interface {
	toModel(db *gorm.DB) (M, error)
}

// resource serves create/read/replace/delete for one entity type.
type resource[M any, PM record[M], P payload[M]] struct {
	h    *Handler
	name string
}

func (r resource[M, PM, P]) create(c *gin.Context) {
	var body P
	if err := c.ShouldBindJSON(&body); err != nil {
		r.h.fail(c, apperror.Validation(err))
		return
	}
	db := store.DB(c)
	m, err := body.toModel(db)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	if err := db.Omit(clause.Associations).Create(&m).Error; err != nil {
		r.h.fail(c, apperror.FromDB(err, r.name))
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (r resource[M, PM, P]) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	var m M
	if err := store.DB(c).First(&m, id).Error; err != nil {
		r.h.fail(c, apperror.FromDB(err, r.name))
		return
	}
	c.JSON(http.StatusOK, m)
}

// update overwrites every column of the stored row with the request body.
// The body is validated before the row is looked up, so a bad body never
// touches the store.
func (r resource[M, PM, P]) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	var body P
	if err := c.ShouldBindJSON(&body); err != nil {
		r.h.fail(c, apperror.Validation(err))
		return
	}
	db := store.DB(c)
	var existing M
	if err := db.First(&existing, id).Error; err != nil {
		r.h.fail(c, apperror.FromDB(err, r.name))
		return
	}
	m, err := body.toModel(db)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	base := PM(&m).BaseRecord()
	*base = *PM(&existing).BaseRecord()
	if err := db.Omit(clause.Associations).Save(&m).Error; err != nil {
		r.h.fail(c, apperror.FromDB(err, r.name))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (r resource[M, PM, P]) remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	res := store.DB(c).Delete(PM(new(M)), id)
	if res.Error != nil {
		r.h.fail(c, apperror.FromDB(res.Error, r.name))
		return
	}
	if res.RowsAffected == 0 {
		r.h.fail(c, apperror.NotFound(r.name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}
