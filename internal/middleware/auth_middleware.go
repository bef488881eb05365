package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	errTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware validates an HS256 bearer token (or the access_token cookie)
// and copies its claims into the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithAppError(c, errTokenNotFound, nil)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			errObj := errInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = errTokenExpired
			}
			abortWithAppError(c, errObj, nil)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithAppError(c, errInvalidToken, "invalid token claims")
			return
		}

		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			abortWithAppError(c, errInvalidToken, "employee_id not found in token")
			return
		}

		companyID, _ := claims["company_id"].(string)
		if companyID == "" {
			abortWithAppError(c, errInvalidToken, "company_id not found in token")
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			userID = employeeID
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("company_id", companyID)
		c.Set("role", strings.ToUpper(role))

		c.Next()
	}
}

func abortWithAppError(c *gin.Context, err *apperror.AppError, details any) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, details)
	c.Abort()
}
