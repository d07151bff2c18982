package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderLoginPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/login.html", TemplateData{
		Title:     "Sign In",
		CSRFToken: "token",
		Data: map[string]any{
			"Form":   struct{ Email, Password string }{},
			"Errors": map[string]string{},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Sign in to Meridian")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRenderStatusKeepsContentType(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.RenderStatus(rec, 422, "pages/login.html", TemplateData{
		Title: "Sign In",
		Data: map[string]any{
			"Form":   struct{ Email, Password string }{},
			"Errors": map[string]string{"general": "invalid credentials"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 422, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/missing.html", TemplateData{})
	assert.Error(t, err)
}
