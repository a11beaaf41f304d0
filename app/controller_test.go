package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validator/app"
	"github.com/km-arc/go-validator/framework/routing"
	"github.com/km-arc/go-validator/framework/ruleset"
	"github.com/km-arc/go-validator/framework/validation"
)

const rulesYAML = `
signup:
  email: required|email
  password:
    required: true
    min: 8
    confirmed: ~
`

func newServer(t *testing.T, withSets bool) *routing.Router {
	t.Helper()
	v := validation.New()

	var sets *ruleset.Sets
	if withSets {
		var err error
		sets, err = ruleset.Parse([]byte(rulesYAML))
		require.NoError(t, err)
		require.NoError(t, sets.Compile(v))
	}

	r := routing.New(nil)
	app.NewController(v, sets, nil).Routes(r)
	return r
}

func send(t *testing.T, r http.Handler, method, path, contentType, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return rr, m
}

func TestHealth(t *testing.T) {
	rr, body := send(t, newServer(t, false), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}

func TestCriteria(t *testing.T) {
	rr, body := send(t, newServer(t, false), http.MethodGet, "/criteria", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	names, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Contains(t, names, "required")
	assert.Contains(t, names, "between")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, body map[string]any)
	}{
		{
			name:   "passes",
			body:   `{"data":{"age":21},"rules":{"age":"required|integer|min:18"}}`,
			status: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, map[string]any{"valid": true}, body["data"])
			},
		},
		{
			name:   "fails with report",
			body:   `{"data":{"age":"abc"},"rules":{"age":{"required":true,"numeric":null},"name":"required"}}`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "The given data was invalid.", body["message"])
				errs, ok := body["errors"].(map[string]any)
				require.True(t, ok)

				age := errs["age"].(map[string]any)
				assert.Equal(t, "numeric", age["kind"])
				assert.Equal(t, "The age field must be a numeric value.", age["message"])
				assert.Equal(t, "ValidatorError", age["name"])
				assert.Equal(t, "abc", age["value"])

				name := errs["name"].(map[string]any)
				assert.Equal(t, "required", name["kind"])
				assert.Equal(t, "", name["value"])
			},
		},
		{
			name:   "unrecognized criterion",
			body:   `{"data":{},"rules":{"age":"bogus:1"}}`,
			status: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "unrecognized criterion")
				assert.Contains(t, body["message"], "bogus:1")
			},
		},
		{
			name:   "malformed body",
			body:   `{"data":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "rules must be strings or objects",
			body:   `{"data":{},"rules":{"age":["required"]}}`,
			status: http.StatusBadRequest,
		},
	}
	srv := newServer(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := send(t, srv, http.MethodPost, "/validate", "application/json", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestValidate_RequiresJSON(t *testing.T) {
	srv := newServer(t, false)

	form := url.Values{"data": {"x"}, "rules": {"required"}}
	rr, body := send(t, srv, http.MethodPost, "/validate", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.Equal(t, "The request body must be JSON.", body["message"])

	rr, body = send(t, srv, http.MethodPost, "/validate", "", `{"data":{"age":21},"rules":{"age":"integer"}}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"valid": true}, body["data"])
}

func TestListRuleSets(t *testing.T) {
	_, body := send(t, newServer(t, true), http.MethodGet, "/rulesets", "", "")
	assert.Equal(t, []any{"signup"}, body["data"])

	_, body = send(t, newServer(t, false), http.MethodGet, "/rulesets", "", "")
	assert.Equal(t, []any{}, body["data"])
}

func TestValidateRuleSet(t *testing.T) {
	srv := newServer(t, true)

	rr, body := send(t, srv, http.MethodPost, "/rulesets/signup", "application/json",
		`{"email":"ann@example.com","password":"longenough","password_confirmation":"longenough"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"valid": true}, body["data"])

	form := url.Values{"email": {"not-an-email"}, "password": {"short"}}
	rr, body = send(t, srv, http.MethodPost, "/rulesets/signup", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestValidateRuleSet_NotFound(t *testing.T) {
	rr, body := send(t, newServer(t, true), http.MethodPost, "/rulesets/missing", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Rule set not found.", body["message"])

	rr, _ = send(t, newServer(t, false), http.MethodPost, "/rulesets/signup", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidateRuleSet_NotCompiled(t *testing.T) {
	sets, err := ruleset.Parse([]byte(rulesYAML))
	require.NoError(t, err)

	r := routing.New(nil)
	app.NewController(nil, sets, nil).Routes(r)

	rr, _ := send(t, r, http.MethodPost, "/rulesets/signup", "application/json", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
