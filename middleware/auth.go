package middleware

import (
	"net/http"
	"strings"

	studentRepo "blissdrive/database/repository/student"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthStudentMiddleware authenticates a student request: the bearer token
// must validate and its hash must match the one stored on the account.
func JWTAuthStudentMiddleware(repo studentRepo.StudentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		stu, err := repo.GetByTokenHash(computedHash)
		if err != nil || stu == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or student not found"})
			return
		}

		c.Set("studentID", stu.ID)
		c.Next()
	}
}
