package rpc

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"msns_backend/internals/constants"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/middlewares/auth"
)

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Defaulter fills zero values after decoding and before validation.
type Defaulter interface{ Defaults() }

// Checker runs after tag validation for rules tags cannot express.
type Checker interface{ Check() error }

// RawChecker inspects the raw JSON before decoding.
type RawChecker interface{ CheckRaw(raw []byte) error }

// Empty is the input of procedures that take none.
type Empty struct{}

type Procedure struct {
	Name  string
	Kind  Kind
	Roles []constants.Role
	call  func(ctx context.Context, raw []byte) (any, error)
}

type Option func(*Procedure)

// Roles restricts a procedure to callers holding one of roles.
func Roles(roles ...constants.Role) Option {
	return func(p *Procedure) { p.Roles = roles }
}

type Router struct {
	procs     map[string]*Procedure
	validator *helper.Validator
	metrics   *Metrics
	logger    zerolog.Logger
}

func NewRouter(v *helper.Validator, logger zerolog.Logger, metrics *Metrics) *Router {
	if v == nil {
		v = helper.NewValidator()
	}
	return &Router{
		procs:     map[string]*Procedure{},
		validator: v,
		metrics:   metrics,
		logger:    logger,
	}
}

func (r *Router) Validator() *helper.Validator { return r.validator }

// Names lists registered procedures in lexical order.
func (r *Router) Names() []string {
	out := make([]string, 0, len(r.procs))
	for name := range r.procs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func Query[In any, Out any](r *Router, name string, h func(context.Context, In) (Out, error), opts ...Option) {
	register(r, name, KindQuery, h, opts)
}

func Mutation[In any, Out any](r *Router, name string, h func(context.Context, In) (Out, error), opts ...Option) {
	register(r, name, KindMutation, h, opts)
}

func register[In any, Out any](r *Router, name string, kind Kind, h func(context.Context, In) (Out, error), opts []Option) {
	if _, dup := r.procs[name]; dup {
		panic(fmt.Sprintf("rpc: procedure %q registered twice", name))
	}
	p := &Procedure{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(p)
	}
	p.call = func(ctx context.Context, raw []byte) (any, error) {
		in, err := decode[In](r.validator, raw)
		if err != nil {
			return nil, err
		}
		return h(ctx, in)
	}
	r.procs[name] = p
}

func decode[In any](v *helper.Validator, raw []byte) (In, error) {
	var in In
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if rc, ok := any(&in).(RawChecker); ok {
		if err := rc.CheckRaw(raw); err != nil {
			return in, err
		}
	}
	if err := sonic.Unmarshal(raw, &in); err != nil {
		return in, BadRequest("Invalid input")
	}
	if d, ok := any(&in).(Defaulter); ok {
		d.Defaults()
	}
	if fields := v.Struct(&in); fields != nil {
		return in, Validation(fields)
	}
	if c, ok := any(&in).(Checker); ok {
		if err := c.Check(); err != nil {
			return in, err
		}
	}
	return in, nil
}

// Call invokes a procedure in-process. Authorization uses the principal in ctx.
func (r *Router) Call(ctx context.Context, name string, raw []byte) (any, error) {
	p, ok := r.procs[name]
	if !ok {
		return nil, NotFound("Procedure not found")
	}
	return r.invoke(ctx, p, raw)
}

func (r *Router) invoke(ctx context.Context, p *Procedure, raw []byte) (out any, err error) {
	start := time.Now()
	defer func() {
		r.metrics.observe(p.Name, CodeOf(err), time.Since(start))
		if e := AsError(err); e != nil && e.Code == CodeInternal {
			r.loggerFor(ctx).Error().
				Err(e.Cause).
				Str("procedure", p.Name).
				Msg(e.Message)
		}
	}()

	if err := authorize(ctx, p); err != nil {
		return nil, err
	}
	return p.call(ctx, raw)
}

func authorize(ctx context.Context, p *Procedure) error {
	if len(p.Roles) == 0 {
		return nil
	}
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return Unauthorized("Unauthorized")
	}
	if principal.Role == constants.RoleNone || !principal.Role.In(p.Roles) {
		return Forbidden(constants.RoleError(principal.Role, p.Name))
	}
	return nil
}

func (r *Router) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &r.logger
}

/* ===============================
   HTTP binding
=================================*/

// Mount exposes procedures as GET /<name>?input=<json> for queries and
// POST /<name> with a JSON body for mutations.
func (r *Router) Mount(g fiber.Router) {
	g.Get("/:procedure", r.httpHandler(KindQuery))
	g.Post("/:procedure", r.httpHandler(KindMutation))
}

func (r *Router) httpHandler(verb Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("procedure")
		p, ok := r.procs[name]
		if !ok {
			return writeError(c, NotFound("Procedure not found"))
		}
		if p.Kind != verb {
			return writeError(c, &Error{
				Code:    CodeMethodNotSupported,
				Message: fmt.Sprintf("%s is a %s", name, p.Kind),
			})
		}

		var raw []byte
		if verb == KindQuery {
			raw = []byte(c.Query("input"))
		} else {
			raw = c.Body()
		}

		out, err := r.invoke(c.UserContext(), p, raw)
		if err != nil {
			return writeError(c, err)
		}
		return helper.JsonOK(c, "ok", out)
	}
}

func writeError(c *fiber.Ctx, err error) error {
	e := AsError(err)
	return helper.JsonErrorCode(c, e.Code.Status(), string(e.Code), e.Message, e.Fields)
}
