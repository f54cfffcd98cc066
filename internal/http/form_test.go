package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tourhttp "github.com/tourdesk/admin-client/internal/http"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func TestForm_Order(t *testing.T) {
	t.Parallel()

	form := tourhttp.NewForm().
		AddField("Name", "Beach").
		AddField("Destination", "Nha Trang").
		AddFile("Image", &tourapi.Upload{Filename: "a.jpg"}).
		AddField("Description", "")

	assert.Equal(t, []string{"Name", "Destination", "Image", "Description"}, form.Fields())
	assert.True(t, form.HasFile("Image"))
	assert.False(t, form.HasFile("Name"))
	assert.False(t, form.HasFile("Missing"))
}

func TestForm_Empty(t *testing.T) {
	t.Parallel()

	form := tourhttp.NewForm()

	assert.Empty(t, form.Fields())
	assert.False(t, form.HasFile("Image"))
}
