package api

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"backoffice-service/internal/apperr"

	"github.com/gin-gonic/gin"
)

// EntityResource is the uniform operation set the generic dispatch
// exposes for one entity. List and the write operations read their
// entity-specific query parameters and payloads from the request.
type EntityResource interface {
	List(c *gin.Context) (PageData, error)
	Get(c *gin.Context, id int64) (any, error)
	Create(c *gin.Context) (any, error)
	Update(c *gin.Context, id int64) (any, error)
	LogicDelete(ctx context.Context, id int64) error
	LogicDeleteBatch(ctx context.Context, ids []int64) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
	Restore(ctx context.Context, id int64) error
	RestoreBatch(ctx context.Context, ids []int64) error
}

// Registry maps entity names onto their resources. It is populated once
// at startup; lookups at request time never mutate it. Entities may be
// registered read-only, which keeps their write routes off limits on
// that mount.
type Registry struct {
	resources map[string]EntityResource
	readOnly  map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		resources: map[string]EntityResource{},
		readOnly:  map[string]bool{},
	}
}

func (r *Registry) Register(name string, resource EntityResource) {
	r.resources[strings.ToLower(name)] = resource
}

func (r *Registry) RegisterReadOnly(name string, resource EntityResource) {
	name = strings.ToLower(name)
	r.resources[name] = resource
	r.readOnly[name] = true
}

// Resolve returns the resource for an entity name, or an
// InvalidArgument error listing the known names.
func (r *Registry) Resolve(name string) (EntityResource, error) {
	resource, ok := r.resources[strings.ToLower(name)]
	if !ok {
		return nil, apperr.InvalidArgument("unknown entity: %s (known: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return resource, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// batchRequest is the body of every batch operation.
type batchRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

// Mount registers the generic CRUD routes on a router group.
func (r *Registry) Mount(group *gin.RouterGroup) {
	group.GET("/:entity", r.handleList)
	group.GET("/:entity/:id", r.handleGet)
	group.POST("/:entity", r.handleCreate)
	group.PUT("/:entity/:id", r.handleUpdate)
	group.DELETE("/:entity/:id", r.handleDelete)
	group.POST("/:entity/:id/restore", r.handleRestore)
	group.POST("/:entity/batch/logic-delete", r.handleBatch(EntityResource.LogicDeleteBatch))
	group.POST("/:entity/batch/delete", r.handleBatch(EntityResource.DeleteBatch))
	group.POST("/:entity/batch/restore", r.handleBatch(EntityResource.RestoreBatch))
}

func (r *Registry) resolve(c *gin.Context) (EntityResource, bool) {
	resource, err := r.Resolve(c.Param("entity"))
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return resource, true
}

// resolveWrite additionally rejects entities mounted read-only.
func (r *Registry) resolveWrite(c *gin.Context) (EntityResource, bool) {
	resource, ok := r.resolve(c)
	if !ok {
		return nil, false
	}
	if r.readOnly[strings.ToLower(c.Param("entity"))] {
		handleError(c, apperr.Forbidden("entity %s is read-only here", c.Param("entity")))
		return nil, false
	}
	return resource, true
}

func entityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handleError(c, apperr.InvalidArgument("invalid id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

func (r *Registry) handleList(c *gin.Context) {
	resource, ok := r.resolve(c)
	if !ok {
		return
	}
	page, err := resource.List(c)
	if err != nil {
		handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (r *Registry) handleGet(c *gin.Context) {
	resource, ok := r.resolve(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}
	data, err := resource.Get(c, id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondOK(c, data)
}

func (r *Registry) handleCreate(c *gin.Context) {
	resource, ok := r.resolveWrite(c)
	if !ok {
		return
	}
	data, err := resource.Create(c)
	if err != nil {
		handleError(c, err)
		return
	}
	respondCreated(c, data)
}

func (r *Registry) handleUpdate(c *gin.Context) {
	resource, ok := r.resolveWrite(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}
	data, err := resource.Update(c, id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondOK(c, data)
}

// handleDelete soft-deletes by default; ?hard=true removes the row.
func (r *Registry) handleDelete(c *gin.Context) {
	resource, ok := r.resolveWrite(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}
	var err error
	if strings.EqualFold(c.Query("hard"), "true") {
		err = resource.Delete(c.Request.Context(), id)
	} else {
		err = resource.LogicDelete(c.Request.Context(), id)
	}
	if err != nil {
		handleError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (r *Registry) handleRestore(c *gin.Context) {
	resource, ok := r.resolveWrite(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}
	if err := resource.Restore(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (r *Registry) handleBatch(op func(EntityResource, context.Context, []int64) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := r.resolveWrite(c)
		if !ok {
			return
		}
		var req batchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			handleError(c, apperr.InvalidArgument("invalid batch body: ids required"))
			return
		}
		if len(req.IDs) == 0 {
			handleError(c, apperr.InvalidArgument("ids must not be empty"))
			return
		}
		if err := op(resource, c.Request.Context(), req.IDs); err != nil {
			handleError(c, err)
			return
		}
		respondOK(c, gin.H{"ids": req.IDs})
	}
}
