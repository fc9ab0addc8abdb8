package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/application/session"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// BusinessHeader selects the active business when a user belongs to several
const BusinessHeader = "X-Business-ID"

// SessionMiddleware builds the request Session from the authenticated user
// and, when they have one, their active business. It never rejects a request
// for lack of a business; RequireOnboarding does that.
func SessionMiddleware(businessRepo repository.BusinessRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		s := &session.Session{
			UserID:      userID,
			Email:       c.GetString("user_email"),
			Roles:       c.GetStringSlice("user_roles"),
			Permissions: c.GetStringSlice("user_permissions"),
		}

		ctx := c.Request.Context()
		if raw := c.GetHeader(BusinessHeader); raw != "" {
			businessID, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "Invalid "+BusinessHeader+" header")
				c.Abort()
				return
			}
			membership, err := businessRepo.GetMembership(ctx, businessID, userID)
			if err != nil {
				log.Printf("Failed to load membership for user %s: %v", userID, err)
				response.InternalServerError(c, "Failed to load business")
				c.Abort()
				return
			}
			if membership == nil {
				response.Forbidden(c, "Access denied to this business")
				c.Abort()
				return
			}
			s.Business = &membership.Business
			s.MemberRole = membership.Role
		} else {
			businesses, err := businessRepo.GetUserBusinesses(ctx, userID)
			if err != nil {
				log.Printf("Failed to load businesses for user %s: %v", userID, err)
				response.InternalServerError(c, "Failed to load business")
				c.Abort()
				return
			}
			if len(businesses) > 0 {
				s.Business = &businesses[0]
				if membership, err := businessRepo.GetMembership(ctx, s.Business.ID, userID); err == nil && membership != nil {
					s.MemberRole = membership.Role
				}
			}
		}

		ctx = session.With(ctx, s)
		if s.Onboarded() {
			ctx = infraRepo.WithBusiness(ctx, s.BusinessID())
			c.Set("business_id", s.BusinessID())
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireOnboarding rejects requests from users without an active business
func RequireOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.From(c.Request.Context())
		if !ok || !s.Onboarded() {
			response.Forbidden(c, "Onboarding required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireBusinessManager allows only owners and admins of the active business
func RequireBusinessManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.From(c.Request.Context())
		if !ok || !s.CanManageBusiness() {
			response.Forbidden(c, "Only the business owner or an admin can do this")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession retrieves the request Session
func GetSession(c *gin.Context) *session.Session {
	s, _ := session.From(c.Request.Context())
	return s
}

// GetBusiness retrieves the active business, nil before onboarding
func GetBusiness(c *gin.Context) *entity.Business {
	if s := GetSession(c); s != nil {
		return s.Business
	}
	return nil
}
