package fixtures

import (
	"context"
	"net/http"

	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
)

var (
	_ services.CarbonServiceProvider   = (*CarbonProvider)(nil)
	_ services.LearningServiceProvider = (*LearningProvider)(nil)
	_ services.AuthServiceProvider     = (*AuthProvider)(nil)
)

// backend is what every in-process provider shares: the data, the token issuer and the
// credential the caller would have attached to a request.
type backend struct {
	store  *Store
	issuer *Issuer
	tokens apiclient.TokenSource
}

// authorize mirrors the bearer check of the REST surface.
func (b backend) authorize(ctx context.Context) (*Claims, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var token string
	if b.tokens != nil {
		token = b.tokens.Token()
	}
	claims, err := b.issuer.Validate(token)
	if err != nil {
		return nil, asHTTPError(err)
	}
	return claims, nil
}

// CarbonProvider serves the carbon endpoints from a Store.
type CarbonProvider struct{ backend }

// NewCarbonProvider creates a CarbonProvider.
func NewCarbonProvider(store *Store, issuer *Issuer, tokens apiclient.TokenSource) *CarbonProvider {
	return &CarbonProvider{backend{store: store, issuer: issuer, tokens: tokens}}
}

func (p *CarbonProvider) CalculateCarbon(ctx context.Context, session models.SessionData) (models.CarbonCalculation, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.CarbonCalculation{}, err
	}
	calc, err := p.store.CalculateCarbon(session)
	return calc, asHTTPError(err)
}

func (p *CarbonProvider) OffsetCarbon(ctx context.Context, amount float64) (models.OffsetResult, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.OffsetResult{}, err
	}
	result, err := p.store.Offset(amount)
	return result, asHTTPError(err)
}

func (p *CarbonProvider) GetMetrics(ctx context.Context) (models.CarbonMetrics, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.CarbonMetrics{}, err
	}
	return p.store.Metrics(), nil
}

func (p *CarbonProvider) GetHistory(ctx context.Context) ([]models.PlantationRecord, error) {
	if _, err := p.authorize(ctx); err != nil {
		return nil, err
	}
	return p.store.History(), nil
}

func (p *CarbonProvider) GetTimeline(ctx context.Context) (models.CarbonTimeline, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.CarbonTimeline{}, err
	}
	return p.store.Timeline(), nil
}

// LearningProvider serves the learning endpoints from a Store.
type LearningProvider struct{ backend }

// NewLearningProvider creates a LearningProvider.
func NewLearningProvider(store *Store, issuer *Issuer, tokens apiclient.TokenSource) *LearningProvider {
	return &LearningProvider{backend{store: store, issuer: issuer, tokens: tokens}}
}

func (p *LearningProvider) GeneratePath(ctx context.Context, topic, level string) (models.LearningPath, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.LearningPath{}, err
	}
	path, err := p.store.GeneratePath(topic, level)
	return path, asHTTPError(err)
}

func (p *LearningProvider) PersonalizePath(ctx context.Context, pathID string, prefs models.PathPreferences) (models.LearningPath, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.LearningPath{}, err
	}
	path, err := p.store.PersonalizePath(pathID, prefs)
	return path, asHTTPError(err)
}

func (p *LearningProvider) GetUserPaths(ctx context.Context) ([]models.LearningPath, error) {
	if _, err := p.authorize(ctx); err != nil {
		return nil, err
	}
	return p.store.Paths(), nil
}

func (p *LearningProvider) GetPathByID(ctx context.Context, pathID string) (models.PathDetail, error) {
	if _, err := p.authorize(ctx); err != nil {
		return models.PathDetail{}, err
	}
	detail, err := p.store.Path(pathID)
	return detail, asHTTPError(err)
}

// AuthProvider serves the account endpoints from a Store.
type AuthProvider struct{ backend }

// NewAuthProvider creates an AuthProvider.
func NewAuthProvider(store *Store, issuer *Issuer, tokens apiclient.TokenSource) *AuthProvider {
	return &AuthProvider{backend{store: store, issuer: issuer, tokens: tokens}}
}

func (p *AuthProvider) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return models.AuthResult{}, err
	}
	user, err := p.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		return models.AuthResult{}, asHTTPError(err)
	}
	token, err := p.issuer.Issue(user)
	if err != nil {
		return models.AuthResult{}, asHTTPError(err)
	}
	return models.AuthResult{Token: token, User: user}, nil
}

func (p *AuthProvider) Register(ctx context.Context, payload models.RegisterPayload) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	user, err := p.store.Register(payload.Name, payload.Email, payload.Password)
	return user, asHTTPError(err)
}

func (p *AuthProvider) Me(ctx context.Context) (models.User, error) {
	claims, err := p.authorize(ctx)
	if err != nil {
		return models.User{}, err
	}
	user, err := p.store.UserByID(claims.UserID)
	if err != nil {
		// The account behind a valid token is gone; treat it as signed out.
		return models.User{}, &apiclient.HTTPError{Status: http.StatusUnauthorized, Message: err.Error()}
	}
	return user, nil
}
