package view

import (
	"context"
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

func TestIDFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want model.PageID
	}{
		{"/page/42", "42"},
		{"/page/42/", "42"},
		{"page/abc", "abc"},
		{"/", ""},
		{"", ""},
		{"/nested/page/7", "7"},
		{"/page/a%2Fb", "a/b"},
		{"/page/hello%20world", "hello world"},
		{"/page/100%", "100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IDFromPath(tt.path), "path %q", tt.path)
	}
}

func TestDetail_InitialStateIsLoading(t *testing.T) {
	t.Parallel()

	d := NewDetail(&mockBackend{})
	assert.Equal(t, RenderLoading, d.State().Render())
}

func TestDetail_LoadContent(t *testing.T) {
	t.Parallel()

	page := &model.Page{ID: "42", Title: "Acme", Content: "one\n\ntwo"}
	api := &mockBackend{}
	api.On("GetPage", mock.Anything, model.PageID("42")).Return(page, nil).Once()

	rec := &recorder[DetailState]{}
	d := NewDetail(api, WithObserver(rec.observe))
	require.True(t, d.Load(context.Background(), "/page/42"))

	st := d.State()
	assert.Equal(t, RenderContent, st.Render())
	assert.Equal(t, page, st.Page)
	assert.Equal(t, model.PageID("42"), st.ID)

	require.NotEmpty(t, rec.states)
	assert.Equal(t, RenderLoading, rec.states[0].Render())
}

func TestDetail_NotFound(t *testing.T) {
	t.Parallel()

	api := &mockBackend{}
	api.On("GetPage", mock.Anything, model.PageID("999")).
		Return(nil, eris.Wrap(scraperapi.ErrNotFound, "scraperapi: page 999"))

	d := NewDetail(api)
	d.Load(context.Background(), "/page/999")

	st := d.State()
	assert.Equal(t, RenderNotFound, st.Render())
	assert.Empty(t, st.Err)
	assert.Nil(t, st.Page)
}

func TestDetail_NilPageIsNotFound(t *testing.T) {
	t.Parallel()

	api := &mockBackend{}
	api.On("GetPage", mock.Anything, model.PageID("1")).Return(nil, nil)

	d := NewDetail(api)
	d.Load(context.Background(), "/page/1")

	assert.Equal(t, RenderNotFound, d.State().Render())
}

func TestDetail_BlankIDSkipsBackend(t *testing.T) {
	t.Parallel()

	api := &mockBackend{}
	d := NewDetail(api)

	assert.False(t, d.Load(context.Background(), "/"))
	assert.Equal(t, RenderNotFound, d.State().Render())
	api.AssertNotCalled(t, "GetPage", mock.Anything, mock.Anything)
}

func TestDetail_Failure(t *testing.T) {
	t.Parallel()

	api := &mockBackend{}
	api.On("GetPage", mock.Anything, model.PageID("1")).
		Return(nil, &scraperapi.APIError{StatusCode: 500, Detail: "internal"})

	d := NewDetail(api)
	d.Load(context.Background(), "/page/1")

	st := d.State()
	assert.Equal(t, RenderError, st.Render())
	assert.Equal(t, MsgDetailFailed, st.Err)
	assert.False(t, st.Loading)
}

func TestDetail_ReloadsOnlyWhenIDChanges(t *testing.T) {
	t.Parallel()

	api := &mockBackend{}
	api.On("GetPage", mock.Anything, model.PageID("1")).Return(&model.Page{ID: "1"}, nil).Once()
	api.On("GetPage", mock.Anything, model.PageID("2")).Return(nil, errors.New("boom")).Once()

	d := NewDetail(api)
	assert.True(t, d.Load(context.Background(), "/page/1"))
	assert.False(t, d.Load(context.Background(), "/page/1"))
	assert.True(t, d.Load(context.Background(), "/page/2"))

	st := d.State()
	assert.Equal(t, RenderError, st.Render())
	assert.Nil(t, st.Page)
	api.AssertExpectations(t)
}

func TestRenderState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "loading", RenderLoading.String())
	assert.Equal(t, "error", RenderError.String())
	assert.Equal(t, "not_found", RenderNotFound.String())
	assert.Equal(t, "content", RenderContent.String())
	assert.Equal(t, "unknown", RenderState(99).String())
}
