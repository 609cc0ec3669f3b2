package handlers

import (
	"net/http"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) userPosts(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	posts := make([]models.Post, 0)
	if err := store.DB(c).Where("user_id = ?", id).Order("id").Find(&posts).Error; err != nil {
		h.fail(c, apperror.FromDB(err, "post"))
		return
	}
	c.JSON(http.StatusOK, posts)
}

// userWithPostsResponse always renders "posts", even when the user has none.
type userWithPostsResponse struct {
	models.User
	Posts []models.Post `json:"posts"`
}

func (h *Handler) userWithPosts(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var u models.User
	err = store.DB(c).Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("posts.id")
	}).First(&u, id).Error
	if err != nil {
		h.fail(c, apperror.FromDB(err, "user"))
		return
	}
	resp := userWithPostsResponse{User: u, Posts: u.Posts}
	if resp.Posts == nil {
		resp.Posts = []models.Post{}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) userPurchases(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	purchases := make([]models.Purchase, 0)
	err = store.DB(c).Preload("Invoice").Where("user_id = ?", id).Order("id").Find(&purchases).Error
	if err != nil {
		h.fail(c, apperror.FromDB(err, "purchase"))
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// deleteUserWithPosts removes a user and all of their posts together.
func (h *Handler) deleteUserWithPosts(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var removed int64
	err = store.DB(c).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return apperror.FromDB(err, "user")
		}
		res := tx.Where("user_id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return apperror.FromDB(res.Error, "post")
		}
		removed = res.RowsAffected
		if err := tx.Delete(&u).Error; err != nil {
			return apperror.FromDB(err, "user")
		}
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true, "postsDeleted": removed})
}
