// Package app holds the HTTP controllers of the validation service.
package app

import (
	"errors"
	"log/slog"
	"net/http"

	gohttp "github.com/km-arc/go-validator/framework/http"
	"github.com/km-arc/go-validator/framework/logger"
	"github.com/km-arc/go-validator/framework/routing"
	"github.com/km-arc/go-validator/framework/ruleset"
	"github.com/km-arc/go-validator/framework/validation"
)

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Data  validation.Data  `json:"data"`
	Rules validation.Rules `json:"rules"`
}

// Controller serves the validation endpoints. RuleSets may be nil when no
// rule-set file is configured.
type Controller struct {
	Validator *validation.Validator
	RuleSets  *ruleset.Sets
	Logger    *slog.Logger
}

// NewController creates a Controller. A nil validator falls back to
// validation.New() and a nil logger discards output.
func NewController(v *validation.Validator, sets *ruleset.Sets, log *slog.Logger) *Controller {
	if v == nil {
		v = validation.New()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		Validator: v,
		RuleSets:  sets,
		Logger:    log.With(logger.Component("controller")),
	}
}

// Routes registers the controller's endpoints.
//
//	GET  /health
//	GET  /criteria
//	POST /validate
//	GET  /rulesets
//	POST /rulesets/{name}
func (c *Controller) Routes(r *routing.Router) {
	r.Get("/health", c.Health)
	r.Get("/criteria", c.Criteria)
	r.Group(func(g *routing.Router) {
		g.Middleware(c.requireJSON)
		g.Post("/validate", c.Validate)
	})
	r.Prefix("/rulesets", func(rs *routing.Router) {
		rs.Get("/", c.ListRuleSets)
		rs.Post("/{name}", c.ValidateRuleSet)
	})
}

// requireJSON rejects bodies that are not JSON: rule objects have no form
// encoding.
func (c *Controller) requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.Request(r).IsJSON() {
			c.Response(w).Error(http.StatusUnsupportedMediaType, "The request body must be JSON.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}

func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}

// Health reports liveness.
func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(map[string]string{"status": "ok"})
}

// Criteria lists the registered criterion names.
func (c *Controller) Criteria(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(c.Validator.Registry().Names())
}

// Validate runs ad-hoc rules from the body against the body's data.
func (c *Controller) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var body ValidateRequest
	if err := req.Bind(&body); err != nil {
		c.Logger.DebugContext(r.Context(), "malformed validate body",
			logger.Error(err), logger.RequestID(routing.RequestIDFromContext(r.Context())))
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.Validator.Validate(body.Data, body.Rules)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "invalid rules",
			logger.Error(err), logger.RequestID(routing.RequestIDFromContext(r.Context())))
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	c.respond(res, result)
}

// ListRuleSets lists the configured rule-set names.
func (c *Controller) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if c.RuleSets != nil && c.RuleSets.Len() > 0 {
		names = c.RuleSets.Names()
	}
	c.Response(w).Success(names)
}

// ValidateRuleSet validates the request body against a named rule set.
func (c *Controller) ValidateRuleSet(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)
	name := req.RouteParam("name")

	if c.RuleSets == nil {
		res.NotFound("Rule set not found.")
		return
	}
	plan, err := c.RuleSets.Plan(name)
	switch {
	case errors.Is(err, ruleset.ErrUnknownSet):
		res.NotFound("Rule set not found.")
		return
	case err != nil:
		c.Logger.ErrorContext(r.Context(), "rule set unavailable",
			slog.String("ruleset", name), logger.Error(err))
		res.ServerError()
		return
	}

	data, err := req.Data()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	c.respond(res, plan.Run(data))
}

func (c *Controller) respond(res *gohttp.Response, result *validation.Result) {
	if result.Fails() {
		res.ValidationError(result.Errors())
		return
	}
	res.Success(map[string]bool{"valid": true})
}
