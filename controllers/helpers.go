package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"samasya-be/apperrors"
)

// requestContext bounds every handler's database work to 10 seconds.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUserID reads the user id the auth middleware stored in the gin
// context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	str, ok := userID.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(str)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

// respondError maps an error from the core onto the JSON error shape the
// frontend expects, using the taxonomy's HTTP code.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message, "type": appErr.Type})
}
