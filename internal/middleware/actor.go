package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/config"
	"keywordapi/internal/models"
)

// Header names used when authentication is enabled without OIDC, for
// deployments behind a gateway that injects the caller.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// TokenVerifier checks a bearer token and returns its subject and role.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (subject, role string, err error)
}

// OIDCVerifier adapts a go-oidc ID token verifier.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer and builds a verifier for clientID.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// VerifyToken verifies raw and reads the optional role claim.
func (v *OIDCVerifier) VerifyToken(ctx context.Context, raw string) (string, string, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return "", "", err
	}

	var claims struct {
		Role  string   `json:"role"`
		Roles []string `json:"roles"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", "", err
	}

	role := claims.Role
	if role == "" && len(claims.Roles) > 0 {
		role = claims.Roles[0]
	}
	return idToken.Subject, role, nil
}

// ActorMiddleware resolves the caller of each request and stores it in
// c.Locals("actor") as a *models.Actor.
type ActorMiddleware struct {
	cfg      *config.Config
	verifier TokenVerifier
	mock     *models.Actor
}

// NewActorMiddleware creates an actor resolver. verifier may be nil, in which
// case enabled authentication falls back to identity headers.
func NewActorMiddleware(cfg *config.Config, verifier TokenVerifier) *ActorMiddleware {
	return &ActorMiddleware{
		cfg:      cfg,
		verifier: verifier,
		mock:     models.NewActor(cfg.MockActorID(), cfg.MockUserRole),
	}
}

// Resolve identifies the actor and enforces role restrictions.
func (m *ActorMiddleware) Resolve(c fiber.Ctx) error {
	if !m.cfg.AuthEnabled {
		c.Locals("actor", m.mock)
		return c.Next()
	}

	var (
		actor *models.Actor
		err   error
	)
	if m.verifier != nil {
		actor, err = m.fromBearer(c)
	} else {
		actor, err = fromHeaders(c)
	}
	if err != nil {
		return err
	}

	if c.Method() == fiber.MethodDelete && !actor.CanDelete() {
		return fiber.NewError(fiber.StatusForbidden, "access denied for role "+actor.Role+" to "+c.Method()+" "+c.Path())
	}

	c.Locals("actor", actor)
	return c.Next()
}

func (m *ActorMiddleware) fromBearer(c fiber.Ctx) (*models.Actor, error) {
	raw, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok || raw == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	subject, role, err := m.verifier.VerifyToken(c.Context(), raw)
	if err != nil {
		slog.Debug("bearer token rejected", "error", err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
	}
	if subject == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "token has no subject")
	}
	if role == "" {
		role = models.RoleProjectStaff
	}
	return models.NewActor(SubjectID(subject), role), nil
}

func fromHeaders(c fiber.Ctx) (*models.Actor, error) {
	rawID := c.Get(HeaderUserID)
	role := c.Get(HeaderUserRole)
	if rawID == "" || role == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing user information in headers")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid "+HeaderUserID+" header")
	}
	return models.NewActor(id, role), nil
}

// SubjectID maps a token subject to an actor id. UUID subjects are used as
// is; anything else maps to a stable name-based UUID.
func SubjectID(subject string) uuid.UUID {
	if id, err := uuid.Parse(subject); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(subject))
}

// ErrNoActor is returned by ActorFrom when no actor was resolved.
var ErrNoActor = errors.New("no actor on request")

// ActorFrom returns the actor stored by Resolve.
func ActorFrom(c fiber.Ctx) (*models.Actor, error) {
	actor, ok := c.Locals("actor").(*models.Actor)
	if !ok || actor == nil {
		return nil, ErrNoActor
	}
	return actor, nil
}
