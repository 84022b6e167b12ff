package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// BuildFunc decodes the request body into a record ready to store. A nil
// existing record means create.
type BuildFunc[T any] func(c *gin.Context, existing *T) (*T, error)

// Resource serves list, get, create, update, toggle and delete for one
// record type.
type Resource[T any] struct {
	entity   string
	resource string
	repo     repository.Repository[T]
	toggler  repository.ToggleRepository[T]
	build    BuildFunc[T]
	describe func(*T) (id, name string)
	active   func(*T) bool
	filter   func(c *gin.Context, f *repository.ListFilter) error
	hooks    *Hooks
}

// NewResource serves repo. Toggle is available when repo implements
// repository.ToggleRepository and WithActive is set.
func NewResource[T any](
	entity, resource string,
	repo repository.Repository[T],
	build BuildFunc[T],
	describe func(*T) (id, name string),
	hooks *Hooks,
) *Resource[T] {
	r := &Resource[T]{
		entity:   entity,
		resource: resource,
		repo:     repo,
		build:    build,
		describe: describe,
		hooks:    hooks,
	}
	if t, ok := repo.(repository.ToggleRepository[T]); ok {
		r.toggler = t
	}
	return r
}

// WithActive reports the isActive flag after a toggle.
func (r *Resource[T]) WithActive(active func(*T) bool) *Resource[T] {
	r.active = active
	return r
}

// WithFilter adds resource-specific query filters to List.
func (r *Resource[T]) WithFilter(filter func(c *gin.Context, f *repository.ListFilter) error) *Resource[T] {
	r.filter = filter
	return r
}

// CanToggle reports whether records of this resource carry an isActive flag.
func (r *Resource[T]) CanToggle() bool {
	return r.toggler != nil && r.active != nil
}

func (r *Resource[T]) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		handleRequestError(c, &BindError{Err: err})
		return
	}
	params.Normalize()

	filter := repository.FilterFromParams(params)
	if r.filter != nil {
		if err := r.filter(c, &filter); err != nil {
			handleRequestError(c, &BindError{Err: err})
			return
		}
	}

	ctx := c.Request.Context()
	items, err := r.repo.List(ctx, filter)
	if err != nil {
		handleRepositoryError(c, err, r.entity, "list")
		return
	}
	total, err := r.repo.Count(ctx, filter)
	if err != nil {
		handleRepositoryError(c, err, r.entity, "count")
		return
	}
	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, models.ListResponse[T]{
		Data:       items,
		Pagination: models.NewPagination(params.Page, params.Limit, total),
	})
}

func (r *Resource[T]) Get(c *gin.Context) {
	rec, err := r.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRepositoryError(c, err, r.entity, "get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (r *Resource[T]) Create(c *gin.Context) {
	rec, err := r.build(c, nil)
	if err != nil {
		handleRepositoryError(c, err, r.entity, "create")
		return
	}

	if err = r.repo.Create(c.Request.Context(), rec); err != nil {
		handleRepositoryError(c, err, r.entity, "create")
		return
	}

	id, name := r.describe(rec)
	r.hooks.written(c, events.Created, r.resource, id, name, nil)
	c.JSON(http.StatusCreated, gin.H{"data": rec})
}

func (r *Resource[T]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	existing, err := r.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		handleRepositoryError(c, err, r.entity, "update")
		return
	}

	rec, err := r.build(c, existing)
	if err != nil {
		handleRepositoryError(c, err, r.entity, "update")
		return
	}

	if err = r.repo.Update(ctx, rec); err != nil {
		handleRepositoryError(c, err, r.entity, "update")
		return
	}

	id, name := r.describe(rec)
	r.hooks.written(c, events.Updated, r.resource, id, name, nil)
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (r *Resource[T]) Toggle(c *gin.Context) {
	if !r.CanToggle() {
		respondError(c, http.StatusMethodNotAllowed, r.entity+" has no status toggle")
		return
	}

	rec, err := r.toggler.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRepositoryError(c, err, r.entity, "toggle")
		return
	}

	id, name := r.describe(rec)
	r.hooks.written(c, events.ToggleType(r.active(rec)), r.resource, id, name, nil)
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (r *Resource[T]) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	rec, err := r.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		handleRepositoryError(c, err, r.entity, "delete")
		return
	}

	id, name := r.describe(rec)
	if err = r.repo.Delete(ctx, id); err != nil {
		handleRepositoryError(c, err, r.entity, "delete")
		return
	}

	r.hooks.written(c, events.Deleted, r.resource, id, name, nil)
	c.JSON(http.StatusOK, gin.H{"message": r.entity + " deleted"})
}
