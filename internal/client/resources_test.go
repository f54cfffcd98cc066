package client_test

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/internal/client"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

type recordedRequest struct {
	method string
	uri    string
	body   string
}

type recorder struct {
	mutex    sync.Mutex
	requests []recordedRequest
}

func (r *recorder) all() []recordedRequest {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]recordedRequest(nil), r.requests...)
}

// recordingServer answers every request with response and records what it received.
func recordingServer(t *testing.T, response string) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		rec.mutex.Lock()
		rec.requests = append(rec.requests, recordedRequest{
			method: request.Method,
			uri:    request.URL.RequestURI(),
			body:   string(body),
		})
		rec.mutex.Unlock()

		_, _ = writer.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server, rec
}

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	c, err := client.New(context.Background(), &tourapi.Config{BaseURL: baseURL})
	require.NoError(t, err)

	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := client.New(context.Background(), &tourapi.Config{})
	require.ErrorIs(t, err, client.ErrBaseURLRequired)
}

func TestNew_DefaultsToMemoryCache(t *testing.T) {
	t.Parallel()

	c := newClient(t, "http://localhost:8080/api")
	assert.IsType(t, &tourapi.MemoryCache{}, c.Cache())
	assert.NotNil(t, c.Requester())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestToursClient(t *testing.T) {
	t.Parallel()

	t.Run("list unwraps data", func(t *testing.T) {
		t.Parallel()

		server, requests := recordingServer(t, `{"data":[{"id":"t1","name":"Bay","tags":[{"id":3,"name":"cruise"}]}]}`)
		c := newClient(t, server.URL)

		tours, err := c.Tours().List(context.Background())
		require.NoError(t, err)
		require.Len(t, tours, 1)
		assert.Equal(t, "Bay", tours[0].Name)
		assert.Equal(t, []int{3}, tours[0].TagIDs())
		assert.Equal(t, "/tour/GetTours", requests.all()[0].uri)
	})

	t.Run("get with null data", func(t *testing.T) {
		t.Parallel()

		server, _ := recordingServer(t, `{"data":null}`)
		c := newClient(t, server.URL)

		_, err := c.Tours().Get(context.Background(), "t1")
		require.ErrorIs(t, err, client.ErrEmptyData)
	})

	t.Run("get requires id", func(t *testing.T) {
		t.Parallel()

		server, requests := recordingServer(t, `{}`)
		c := newClient(t, server.URL)

		_, err := c.Tours().Get(context.Background(), "")
		require.ErrorIs(t, err, client.ErrIDRequired)
		assert.Empty(t, requests.all())
	})

	t.Run("create requires image", func(t *testing.T) {
		t.Parallel()

		server, requests := recordingServer(t, `{}`)
		c := newClient(t, server.URL)

		_, err := c.Tours().Create(context.Background(), &tourapi.TourFields{Name: "Bay"}, nil)
		require.ErrorIs(t, err, tourapi.ErrImageRequired)
		assert.Empty(t, requests.all())
	})

	t.Run("categories and tags body", func(t *testing.T) {
		t.Parallel()

		server, requests := recordingServer(t, `"updated"`)
		c := newClient(t, server.URL)

		resp, err := c.Tours().UpdateCategoriesAndTags(context.Background(), "t1",
			&tourapi.TourCategoriesAndTagsRequest{CategoryIDs: []int{1, 2}, TagIDs: []int{3}})
		require.NoError(t, err)
		assert.Equal(t, `"updated"`, string(resp))

		require.Len(t, requests.all(), 1)
		assert.Equal(t, http.MethodPut, requests.all()[0].method)
		assert.Equal(t, "/tour/UpdateTourCategoriesAndTags/t1", requests.all()[0].uri)
		assert.JSONEq(t, `{"categoryIds":[1,2],"tagIds":[3]}`, requests.all()[0].body)
	})

	t.Run("empty associations encode as arrays", func(t *testing.T) {
		t.Parallel()

		server, requests := recordingServer(t, `null`)
		c := newClient(t, server.URL)

		_, err := c.Tours().UpdateCategoriesAndTags(context.Background(), "t1", &tourapi.TourCategoriesAndTagsRequest{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"categoryIds":[],"tagIds":[]}`, requests.all()[0].body)
	})
}

func TestToursClient_MultipartUpdate(t *testing.T) {
	t.Parallel()

	var (
		mutex  sync.Mutex
		names  []string
		values = map[string]string{}
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/tour/UpdateTour/t1", request.URL.Path)

		_, params, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
		assert.NoError(t, err)

		reader := multipart.NewReader(request.Body, params["boundary"])

		for {
			part, err := reader.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}

			if !assert.NoError(t, err) {
				break
			}

			data, _ := io.ReadAll(part)

			mutex.Lock()
			names = append(names, part.FormName())
			values[part.FormName()] = string(data)
			mutex.Unlock()
		}

		_, _ = writer.Write([]byte(`{"data":{"id":"t1"}}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL)

	resp, err := c.Tours().Update(context.Background(), "t1", &tourapi.TourFields{
		Name:        "Bay",
		Destination: "Quang Ninh",
		Price:       199.5,
		StartDate:   "2026-11-01",
		EndDate:     "2026-11-03",
		Description: "Cruise",
	}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1"}`, string(resp))

	mutex.Lock()
	defer mutex.Unlock()

	assert.Equal(t, []string{"Name", "Destination", "Price", "StartDate", "EndDate", "Description"}, names)
	assert.Equal(t, "199.5", values["Price"])
	assert.Equal(t, "2026-11-01", values["StartDate"])
}

func TestServicesClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"data":{"ok":true}}`)
	c := newClient(t, server.URL)
	ctx := context.Background()

	resp, err := c.Services().UpdateTourServices(ctx, "t1", &tourapi.TourServicesRequest{ServiceIDs: []string{"s1", "s2"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp))

	_, err = c.Services().UpdateTourServices(ctx, "t1", &tourapi.TourServicesRequest{})
	require.NoError(t, err)

	require.Len(t, requests.all(), 2)
	assert.Equal(t, "/service/UpdateTourService/t1", requests.all()[0].uri)
	assert.JSONEq(t, `{"serviceId":["s1","s2"]}`, requests.all()[0].body)
	assert.JSONEq(t, `{"serviceId":[]}`, requests.all()[1].body)
}

func TestUsersClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"message":"ok"}`)
	c := newClient(t, server.URL)
	ctx := context.Background()

	resp, err := c.Users().UpdateRole(ctx, "u1", tourapi.UserRoleAdmin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"ok"}`, string(resp))

	_, err = c.Users().ListByRole(ctx, "Admin")
	require.NoError(t, err)

	require.Len(t, requests.all(), 2)
	assert.Equal(t, http.MethodPut, requests.all()[0].method)
	assert.Equal(t, "/user/UpdateUserRole/u1", requests.all()[0].uri)
	assert.Equal(t, "1", requests.all()[0].body)
	assert.Equal(t, "/user/GetUsersByRole/Admin", requests.all()[1].uri)
}

func TestTagsClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"result":[{"id":3,"name":"sea & sun"}]}`)
	c := newClient(t, server.URL)
	ctx := context.Background()

	tags, err := c.Tags().Search(ctx, "sea & sun")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 3, tags[0].ID)

	_, err = c.Tags().Delete(ctx, &tourapi.Tag{ID: 3, Name: "sea & sun"})
	require.NoError(t, err)

	require.Len(t, requests.all(), 2)
	assert.Equal(t, "/TourRelevent/tags/search?name=sea+%26+sun", requests.all()[0].uri)
	assert.Equal(t, http.MethodDelete, requests.all()[1].method)
	assert.Equal(t, "/TourRelevent/tags", requests.all()[1].uri)
	assert.JSONEq(t, `{"id":3,"name":"sea & sun"}`, requests.all()[1].body)
}

func TestCategoriesClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"result":[{"id":1,"name":"Sea","description":"Beaches"}]}`)
	c := newClient(t, server.URL)
	ctx := context.Background()

	categories, err := c.Categories().List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beaches", categories[0].Description)

	_, err = c.Categories().Create(ctx, &tourapi.Category{Name: "Mountain"})
	require.NoError(t, err)

	assert.Equal(t, "/TourRelevent/categories", requests.all()[0].uri)
	assert.Equal(t, http.MethodPost, requests.all()[1].method)
	assert.JSONEq(t, `{"id":0,"name":"Mountain","description":""}`, requests.all()[1].body)
}

func TestBookingsClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"data":[{"id":"b1","username":"ana","tourId":"t1","quantity":2}]}`)
	c := newClient(t, server.URL)

	bookings, err := c.Bookings().ListByUsername(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 2, bookings[0].Quantity)
	assert.Equal(t, "/book/GetBookByUsername/ana", requests.all()[0].uri)
}

func TestAuthClient(t *testing.T) {
	t.Parallel()

	server, requests := recordingServer(t, `{"token":"ignored"}`)
	c := newClient(t, server.URL)

	resp, err := c.Auth().Login(context.Background(), &tourapi.Credentials{Username: "ana", Password: "secret"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"ignored"}`, string(resp))
	assert.Equal(t, "/auth/login", requests.all()[0].uri)
	assert.JSONEq(t, `{"username":"ana","password":"secret"}`, requests.all()[0].body)
}
