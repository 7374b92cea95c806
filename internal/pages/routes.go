package pages

import (
	"context"

	"github.com/isdelr/ecolearn/internal/models"
)

// Route paths of the application.
const (
	RouteRoot        = "/"
	RouteLogin       = "/login"
	RouteRegister    = "/register"
	RouteDashboard   = "/dashboard"
	RouteLearning    = "/learning"
	RouteLesson      = "/learning/{id}"
	RoutePlantations = "/plantations"
	RouteImpact      = "/impact"
	RouteProfile     = "/profile"
)

// UserSource gives controllers the signed-in user.
type UserSource interface {
	User() (models.User, bool)
}

// Authenticator is the part of the auth session the login and register screens drive.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Register(ctx context.Context, form models.RegisterForm) (models.User, error)
}

// AccountSession is what the profile screen needs from the auth session.
type AccountSession interface {
	UserSource
	Logout() error
}
