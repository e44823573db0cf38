package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/services"
	appauth "github.com/shashiranjanraj/ordercrm/pkg/auth"
	"github.com/shashiranjanraj/ordercrm/pkg/bind"
	"github.com/shashiranjanraj/ordercrm/pkg/guard"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/metrics"
	"github.com/shashiranjanraj/ordercrm/pkg/session"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

// loginFailedMessage is deliberately identical for unknown usernames and
// wrong passwords.
const loginFailedMessage = "Username or password is incorrect"

type AuthController struct {
	auth   *services.AuthService
	render *view.Renderer
}

func NewAuthController(auth *services.AuthService, render *view.Renderer) *AuthController {
	return &AuthController{auth: auth, render: render}
}

func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	c.render.Render(w, r, "register", view.Data{})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if _, err := bind.Form(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, errs, err := c.auth.Register(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	if errs.HasErrors() {
		c.render.Render(w, r, "register", view.Data{
			"Errors":   errs,
			"Username": in.Username,
		})
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "user_id", user.ID, "username", user.Username)

	sess := session.FromCtx(r)
	sess.AddFlash("Account successfully created " + user.Username)
	_ = sess.Save(w)

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	c.render.Render(w, r, "login", view.Data{})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""

	user, err := c.auth.Login(username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()

		sess := session.FromCtx(r)
		sess.AddFlash(loginFailedMessage)
		_ = sess.Save(w)

		c.render.Render(w, r, "login", view.Data{"Username": username})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()

	sess := session.FromCtx(r)
	sess.Set("user_id", user.ID)
	sess.Set("role", user.Role)
	if err := sess.Save(w); err != nil {
		fail(w, r, err)
		return
	}

	if remember {
		if token, err := appauth.NewRememberToken(user.ID, user.Role); err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     appauth.RememberCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(appauth.RememberTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}

	if user.Role == models.RoleAdmin {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/user", http.StatusFound)
}

// Logout terminates the session. Safe to call without one.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	_ = sess.Save(w)

	// Expire the remember-me cookie as well.
	http.SetCookie(w, &http.Cookie{
		Name:     appauth.RememberCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// currentCustomerID resolves the signed-in user's customer record.
func currentCustomerID(r *http.Request, orders *services.OrderService) (uint, bool) {
	id, ok := guard.CurrentUser(r)
	if !ok {
		return 0, false
	}
	customer, err := orders.CustomerForUser(id.UserID)
	if err != nil {
		return 0, false
	}
	return customer.ID, true
}
