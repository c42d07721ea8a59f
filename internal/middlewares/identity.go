package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// Identity headers set by the upstream auth layer.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

const identityKey = "identity"

// Identity is the caller as resolved upstream.
type Identity struct {
	TenantID string
	Actor    model.Actor
}

// IdentityMiddleware reads the caller's tenant and actor from the request
// headers. Websocket clients cannot set headers, so query parameters with the
// same meaning are accepted as a fallback. Requests without a tenant are
// rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *ginext.Context) {
		id := Identity{
			TenantID: header(c, HeaderTenantID, "tenant_id"),
			Actor: model.Actor{
				ID:   header(c, HeaderUserID, "user_id"),
				Name: header(c, HeaderUserName, "user_name"),
				Role: header(c, HeaderUserRole, "role"),
			},
		}

		if id.TenantID == "" {
			respond.Fail(c.Writer, http.StatusUnauthorized, errors.New("missing tenant"))
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by IdentityMiddleware.
func IdentityFrom(c *ginext.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// WithIdentity stores id on c.
func WithIdentity(c *ginext.Context, id Identity) {
	c.Set(identityKey, id)
}

func header(c *ginext.Context, name, query string) string {
	if v := c.GetHeader(name); v != "" {
		return v
	}
	return c.Query(query)
}
