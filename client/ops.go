package client

import (
	"context"
	"fmt"

	"github.com/ValerySidorin/sdbc/models"
	"github.com/ValerySidorin/sdbc/rpc"
)

// Credentials is the argument set for SignIn. Empty fields are omitted
// from the envelope; the server decides which are required.
type Credentials struct {
	Username  string
	Password  string
	Access    string
	Namespace string
	Database  string
	Variables map[string]any
}

// Use switches the connection to a namespace and database. Both fields
// are set together, and only after the server accepted the call.
func (c *Conn) Use(ctx context.Context, namespace, database string) error {
	req := rpc.NewRequest(rpc.MethodUse, namespace, database)
	if _, err := c.send(ctx, req, "use"); err != nil {
		return err
	}
	c.sess.namespace = namespace
	c.sess.database = database
	return nil
}

// SignIn authenticates with the given credentials and stores the
// returned bearer token on the session.
func (c *Conn) SignIn(ctx context.Context, creds Credentials) (string, error) {
	vars := map[string]any{}
	if creds.Username != "" {
		vars["user"] = creds.Username
	}
	if creds.Password != "" {
		vars["pass"] = creds.Password
	}
	if creds.Access != "" {
		vars["ac"] = creds.Access
	}
	if creds.Namespace != "" {
		vars["ns"] = creds.Namespace
	}
	if creds.Database != "" {
		vars["db"] = creds.Database
	}
	for k, v := range creds.Variables {
		vars[k] = v
	}

	req := rpc.NewRequest(rpc.MethodSignIn, vars)
	resp, err := c.send(ctx, req, "signing in")
	if err != nil {
		return "", err
	}

	var token string
	if err := c.result(resp, "signing in", &token); err != nil {
		return "", err
	}
	c.sess.token = token
	return token, nil
}

// SignUp registers a new record-access user and stores the returned
// bearer token on the session.
func (c *Conn) SignUp(ctx context.Context, vars map[string]any) (string, error) {
	req := rpc.NewRequest(rpc.MethodSignUp, vars)
	resp, err := c.send(ctx, req, "signup")
	if err != nil {
		return "", err
	}

	var token string
	if err := c.result(resp, "signup", &token); err != nil {
		return "", err
	}
	c.sess.token = token
	return token, nil
}

// Authenticate validates an existing token with the server and adopts
// it for subsequent calls.
func (c *Conn) Authenticate(ctx context.Context, token string) error {
	c.sess.token = token
	req := rpc.NewRequest(rpc.MethodAuthenticate, token)
	if _, err := c.send(ctx, req, "authenticating"); err != nil {
		return err
	}
	return nil
}

// Invalidate drops the session's authentication on the server and
// clears the stored token.
func (c *Conn) Invalidate(ctx context.Context) error {
	req := rpc.NewRequest(rpc.MethodInvalidate)
	if _, err := c.send(ctx, req, "invalidating"); err != nil {
		return err
	}
	c.sess.token = ""
	return nil
}

// Let binds a variable on the session. Bound variables are merged into
// every subsequent query call.
func (c *Conn) Let(key string, value any) {
	c.sess.bind(key, value)
}

// Unset removes a session variable, failing with ErrVarNotBound when
// the name was never bound.
func (c *Conn) Unset(key string) error {
	return c.sess.unbind(key)
}

// Query runs a query and returns the first statement's result. Session
// bindings override same-named call-site vars. Callers needing the
// full multi-statement payload use QueryRaw.
func (c *Conn) Query(ctx context.Context, sql string, vars map[string]any) (any, error) {
	req := rpc.NewRequest(rpc.MethodQuery, sql, c.sess.mergeVars(vars))
	resp, err := c.send(ctx, req, "query")
	if err != nil {
		return nil, err
	}

	var statements []rpc.QueryResult
	if err := c.result(resp, "query", &statements); err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		return nil, &rpc.ProtocolError{Operation: "query", Reason: "empty statement list"}
	}
	if statements[0].Result == nil {
		return nil, nil
	}

	var out any
	if err := c.cd.Decode(statements[0].Result, &out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}

// QueryRaw runs a query and returns the decoded payload verbatim,
// bypassing error validation.
func (c *Conn) QueryRaw(ctx context.Context, sql string, vars map[string]any) (map[string]any, error) {
	req := rpc.NewRequest(rpc.MethodQuery, sql, c.sess.mergeVars(vars))
	return c.sendRaw(ctx, req, "query")
}

func (c *Conn) Create(ctx context.Context, thing any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodCreate, resolveThing(thing), data)
	return c.do(ctx, req, "create")
}

func (c *Conn) Select(ctx context.Context, thing any) (any, error) {
	req := rpc.NewRequest(rpc.MethodSelect, []any{resolveThing(thing)})
	return c.do(ctx, req, "select")
}

func (c *Conn) Update(ctx context.Context, thing any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodUpdate, resolveThing(thing), data)
	return c.do(ctx, req, "update")
}

func (c *Conn) Upsert(ctx context.Context, thing any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodUpsert, resolveThing(thing), data)
	return c.do(ctx, req, "upsert")
}

func (c *Conn) Merge(ctx context.Context, thing any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodMerge, resolveThing(thing), data)
	return c.do(ctx, req, "merge")
}

// Patch applies JSON-patch style operations to the referenced records.
func (c *Conn) Patch(ctx context.Context, thing any, patches any) (any, error) {
	req := rpc.NewRequest(rpc.MethodPatch, resolveThing(thing), patches)
	return c.do(ctx, req, "patch")
}

func (c *Conn) Delete(ctx context.Context, thing any) (any, error) {
	req := rpc.NewRequest(rpc.MethodDelete, resolveThing(thing))
	return c.do(ctx, req, "delete")
}

func (c *Conn) Insert(ctx context.Context, table any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodInsert, table, data)
	return c.do(ctx, req, "insert")
}

func (c *Conn) InsertRelation(ctx context.Context, table any, data any) (any, error) {
	req := rpc.NewRequest(rpc.MethodInsertRelation, table, data)
	return c.do(ctx, req, "insert_relation")
}

// Info returns the record the current session is authenticated as.
func (c *Conn) Info(ctx context.Context) (any, error) {
	req := rpc.NewRequest(rpc.MethodInfo)
	return c.do(ctx, req, "getting database information")
}

func (c *Conn) Version(ctx context.Context) (string, error) {
	req := rpc.NewRequest(rpc.MethodVersion)
	resp, err := c.send(ctx, req, "getting database version")
	if err != nil {
		return "", err
	}

	var version string
	if err := c.result(resp, "getting database version", &version); err != nil {
		return "", err
	}
	return version, nil
}

// do dispatches a validated call and surfaces its result field as-is.
func (c *Conn) do(ctx context.Context, req rpc.Request, operation string) (any, error) {
	resp, err := c.send(ctx, req, operation)
	if err != nil {
		return nil, err
	}

	var out any
	if err := c.result(resp, operation, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// result validates that the response carries a result and decodes it
// into v.
func (c *Conn) result(resp *rpc.Response, operation string, v any) error {
	raw, err := rpc.Result(resp, operation)
	if err != nil {
		return err
	}
	if err := c.cd.Decode(raw, v); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// resolveThing normalizes a string "table:identifier" argument into a
// structured record reference. Any other value, including a bare table
// name, passes through unchanged.
func resolveThing(thing any) any {
	s, ok := thing.(string)
	if !ok {
		return thing
	}
	if rid, ok := models.ParseRecordID(s); ok {
		return rid
	}
	return s
}
