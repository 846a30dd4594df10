package http

import "github.com/gin-gonic/gin"

// Register wires the session endpoints. Sign-up and sign-in are public; the
// session and sign-out routes require a verified token.
func (h *Handler) Register(public, protected *gin.RouterGroup) {
	public.POST("/signup", h.SignUp)
	public.POST("/signin", h.SignIn)

	protected.POST("/signout", h.SignOut)
	protected.GET("/session", h.GetSession)
}
