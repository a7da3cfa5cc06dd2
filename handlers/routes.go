package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/thecryptoview/cryptoview-api/internal/gateway"
	"github.com/thecryptoview/cryptoview-api/internal/store"
)

// RegisterRoutes mounts the gateway operations on a gin engine. Each route
// is a thin translation from the gin request shape to an operation; status
// codes and bodies always come from the shared executor and response
// mapper, so every deployment shape behaves identically.
func RegisterRoutes(r *gin.Engine, exec *gateway.Executor) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		run(c, exec, gateway.Unroutable(c.Request.Method))
	})

	api := r.Group("/api")

	api.GET("/prices", func(c *gin.Context) {
		run(c, exec, gateway.ProxyPrices())
	})
	api.GET("/news", func(c *gin.Context) {
		run(c, exec, gateway.ProxyNews())
	})

	api.GET("/users", func(c *gin.Context) {
		run(c, exec, gateway.ListUsers())
	})
	api.GET("/users/:id", func(c *gin.Context) {
		run(c, exec, gateway.GetUser(c.Param("id")))
	})

	create := func(c *gin.Context) {
		run(c, exec, gateway.CreateUser(bindBody(c)))
	}
	api.POST("/users", create)
	api.POST("/users/signup", create)

	api.PUT("/users/:id", func(c *gin.Context) {
		run(c, exec, gateway.UpdateUser(c.Param("id"), bindBody(c)))
	})
	api.PUT("/users", func(c *gin.Context) {
		run(c, exec, gateway.UpdateUser("", nil))
	})

	api.DELETE("/users/:id", func(c *gin.Context) {
		run(c, exec, gateway.DeleteUser(c.Param("id")))
	})
	api.DELETE("/users", func(c *gin.Context) {
		run(c, exec, gateway.DeleteUser(""))
	})
}

func run(c *gin.Context, exec *gateway.Executor, op gateway.Operation) {
	gateway.Write(c.Writer, exec.Execute(c.Request.Context(), op))
}

// bindBody decodes the JSON request body into a schemaless record. A
// missing or undecodable body becomes an empty record; the store decides
// what to do with it.
func bindBody(c *gin.Context) store.User {
	var body store.User
	if err := c.ShouldBindJSON(&body); err != nil {
		return store.User{}
	}
	return body
}
