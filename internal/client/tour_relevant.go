package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// TourRelevant is an entity managed under the /TourRelevent endpoints.
type TourRelevant interface {
	tourapi.Tag | tourapi.Category
}

// TourRelevantClient provides a generic client for tags and categories. Reads
// are wrapped in a {"result": ...} envelope; mutation responses are returned
// as is.
type TourRelevantClient[T TourRelevant] struct {
	requester    *Requester
	resourcePath string
	entityType   string
	entityPlural string
}

// NewTourRelevantClient creates a new generic tag/category client.
func NewTourRelevantClient[T TourRelevant](requester *Requester, resourcePath, entityType, entityPlural string) *TourRelevantClient[T] {
	return &TourRelevantClient[T]{
		requester:    requester,
		resourcePath: resourcePath,
		entityType:   entityType,
		entityPlural: entityPlural,
	}
}

// List retrieves all entities.
func (c *TourRelevantClient[T]) List(ctx context.Context) ([]T, error) {
	envelope, err := get[tourapi.ResultEnvelope[[]T]](ctx, c.requester, c.resourcePath)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.entityPlural, err)
	}

	return envelope.Result, nil
}

// Search retrieves entities whose name matches.
func (c *TourRelevantClient[T]) Search(ctx context.Context, name string) ([]T, error) {
	path := c.resourcePath + "/search?name=" + url.QueryEscape(name)

	envelope, err := get[tourapi.ResultEnvelope[[]T]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", c.entityPlural, err)
	}

	return envelope.Result, nil
}

// Create creates an entity.
func (c *TourRelevantClient[T]) Create(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, c.resourcePath, http.MethodPost, entity, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.entityType, err)
	}

	return resp, nil
}

// Update updates an entity identified by its id field.
func (c *TourRelevantClient[T]) Update(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, c.resourcePath, http.MethodPut, entity, nil)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.entityType, err)
	}

	return resp, nil
}

// Delete removes an entity. The backend reads the entity from the request body.
func (c *TourRelevantClient[T]) Delete(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, c.resourcePath, http.MethodDelete, entity, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", c.entityType, err)
	}

	return resp, nil
}

// TagsClient implements tourapi.TagsClient.
type TagsClient struct {
	*TourRelevantClient[tourapi.Tag]
}

// NewTagsClient creates a new tags client.
func NewTagsClient(requester *Requester) *TagsClient {
	return &TagsClient{
		TourRelevantClient: NewTourRelevantClient[tourapi.Tag](requester, constants.APIPathTags, "tag", "tags"),
	}
}

// CategoriesClient implements tourapi.CategoriesClient.
type CategoriesClient struct {
	*TourRelevantClient[tourapi.Category]
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(requester *Requester) *CategoriesClient {
	return &CategoriesClient{
		TourRelevantClient: NewTourRelevantClient[tourapi.Category](requester, constants.APIPathCategories, "category", "categories"),
	}
}
