package middleware

import (
	"go-geoattend/internal/domain"
	"go-geoattend/internal/shared/apperror"
	"go-geoattend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const (
	ContextSubject ContextKey = "subject"
	ContextRole    ContextKey = "role"
)

// RBACService is satisfied by anything that can decide an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(string(ContextSubject))
		role := c.GetString(string(ContextRole))

		if subject == "" || role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Subject:  subject,
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message,
				map[string]string{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
