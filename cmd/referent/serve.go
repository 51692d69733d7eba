package main

import "github.com/gin-gonic/gin"

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gin.SetMode(gin.ReleaseMode)
	return deps.Server.ListenAndServe(deps.Ctx, c.Addr)
}
