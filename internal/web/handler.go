package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"backoffice-service/internal/api"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"
	"backoffice-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the session-cookie MVC surface. It reuses the same
// services and entity registry as the REST API, so both surfaces obey
// the same rules.
type Handler struct {
	auth     *service.AuthService
	registry *api.Registry
	logger   *zap.Logger
}

func NewHandler(auth *service.AuthService, registry *api.Registry) *Handler {
	return &Handler{auth: auth, registry: registry, logger: util.GetLogger()}
}

// RegisterRoutes mounts the web routes. The auth middleware upstream
// already gates /admin and /profile.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.index)
	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.POST("/perform_login", h.performLogin)
	router.POST("/perform_logout", h.performLogout)
	router.GET("/profile", h.profile)
	router.GET("/admin/:entity", h.adminList)
	router.GET("/admin/:entity/new", h.adminNewForm)
	router.POST("/admin/:entity", h.adminCreate)
	router.GET("/admin/:entity/:id", h.adminDetail)
	router.GET("/admin/:entity/:id/edit", h.adminEditForm)
	router.POST("/admin/:entity/:id", h.adminUpdate)
	router.POST("/admin/:entity/:id/delete", h.adminSoftDelete)
	router.POST("/admin/:entity/:id/restore", h.adminRestore)
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Error":  c.Query("error") == "true",
		"Logout": c.Query("logout") == "true",
	})
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{})
}

func (h *Handler) register(c *gin.Context) {
	user := &models.User{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
		Address:  c.PostForm("address"),
	}
	if err := h.auth.Register(c.Request.Context(), user); err != nil {
		c.HTML(http.StatusBadRequest, "register.tmpl", gin.H{"Error": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, "/?registered=true")
}

func (h *Handler) performLogin(c *gin.Context) {
	login := c.PostForm("login")
	password := c.PostForm("password")

	result, err := h.auth.Login(c.Request.Context(), login, password)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=true")
		return
	}
	c.SetCookie(api.SessionCookie, result.Session.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/profile")
}

func (h *Handler) performLogout(c *gin.Context) {
	if cookie, err := c.Cookie(api.SessionCookie); err == nil && cookie != "" {
		if err := h.auth.Logout(c.Request.Context(), cookie); err != nil {
			h.logger.Warn("Failed to destroy session", zap.Error(err))
		}
	}
	c.SetCookie(api.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/?logout=true")
}

func (h *Handler) profile(c *gin.Context) {
	cookie, err := c.Cookie(api.SessionCookie)
	if err != nil || cookie == "" {
		c.Redirect(http.StatusFound, "/?error=true")
		return
	}
	session, err := h.auth.GetSession(c.Request.Context(), cookie)
	if err != nil || session == nil {
		c.Redirect(http.StatusFound, "/?error=true")
		return
	}
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"Username": session.Username,
		"Role":     session.Role,
	})
}

// adminList renders one entity's page with the active/deleted toggle.
func (h *Handler) adminList(c *gin.Context) {
	entity := c.Param("entity")
	resource, err := h.registry.Resolve(entity)
	if err != nil {
		c.HTML(http.StatusNotFound, "admin_list.tmpl", gin.H{
			"Entity": entity,
			"Error":  err.Error(),
		})
		return
	}

	page, err := resource.List(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_list.tmpl", gin.H{
			"Entity": entity,
			"Error":  "failed to load records",
		})
		h.logger.Error("Admin list failed", zap.String("entity", entity), zap.Error(err))
		return
	}

	number, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	c.HTML(http.StatusOK, "admin_list.tmpl", gin.H{
		"Entity":        entity,
		"Rows":          page.Content,
		"PageNumber":    number,
		"TotalPages":    page.TotalPages,
		"TotalElements": page.TotalElements,
		"Deleted":       c.Query("deleted") == "true",
		"Flash":         c.Query("flash"),
	})
}

// adminNewForm renders the create form. Records are edited as JSON
// documents, one form for every entity.
func (h *Handler) adminNewForm(c *gin.Context) {
	entity := c.Param("entity")
	if _, err := h.registry.Resolve(entity); err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return
	}
	c.HTML(http.StatusOK, "admin_form.tmpl", gin.H{
		"Entity":  entity,
		"Action":  "/admin/" + entity,
		"Payload": "{}",
	})
}

func (h *Handler) adminDetail(c *gin.Context) {
	entity, id, record, ok := h.loadRecord(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "admin_detail.tmpl", gin.H{
		"Entity": entity,
		"ID":     id,
		"Record": record,
	})
}

func (h *Handler) adminEditForm(c *gin.Context) {
	entity, id, record, ok := h.loadRecord(c)
	if !ok {
		return
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape("failed to load record"))
		return
	}
	c.HTML(http.StatusOK, "admin_form.tmpl", gin.H{
		"Entity":  entity,
		"Action":  "/admin/" + entity + "/" + strconv.FormatInt(id, 10),
		"Payload": string(payload),
	})
}

func (h *Handler) loadRecord(c *gin.Context) (string, int64, any, bool) {
	entity := c.Param("entity")
	resource, err := h.registry.Resolve(entity)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return "", 0, nil, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape("invalid id"))
		return "", 0, nil, false
	}
	record, err := resource.Get(c, id)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return "", 0, nil, false
	}
	return entity, id, record, true
}

func (h *Handler) adminCreate(c *gin.Context) {
	h.adminSubmit(c, "/admin/"+c.Param("entity"), func(resource api.EntityResource) error {
		_, err := resource.Create(c)
		return err
	}, "record created")
}

func (h *Handler) adminUpdate(c *gin.Context) {
	entity := c.Param("entity")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape("invalid id"))
		return
	}
	h.adminSubmit(c, "/admin/"+entity+"/"+c.Param("id"), func(resource api.EntityResource) error {
		_, err := resource.Update(c, id)
		return err
	}, "record updated")
}

// adminSubmit feeds the posted JSON document through the same registry
// resource the token surface uses, so both surfaces enforce identical
// binding and validation rules. Failures re-render the form with the
// submitted document intact.
func (h *Handler) adminSubmit(c *gin.Context, action string, op func(api.EntityResource) error, flash string) {
	entity := c.Param("entity")
	resource, err := h.registry.Resolve(entity)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return
	}

	payload := strings.TrimSpace(c.PostForm("payload"))
	if payload == "" {
		payload = "{}"
	}
	c.Request.Body = io.NopCloser(strings.NewReader(payload))
	c.Request.ContentLength = int64(len(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	if err := op(resource); err != nil {
		c.HTML(http.StatusBadRequest, "admin_form.tmpl", gin.H{
			"Entity":  entity,
			"Action":  action,
			"Payload": payload,
			"Error":   err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(flash))
}

func (h *Handler) adminSoftDelete(c *gin.Context) {
	h.adminAction(c, func(resource api.EntityResource, id int64) error {
		return resource.LogicDelete(c.Request.Context(), id)
	}, "record moved to deleted")
}

func (h *Handler) adminRestore(c *gin.Context) {
	h.adminAction(c, func(resource api.EntityResource, id int64) error {
		return resource.Restore(c.Request.Context(), id)
	}, "record restored")
}

func (h *Handler) adminAction(c *gin.Context, op func(api.EntityResource, int64) error, flash string) {
	entity := c.Param("entity")
	resource, err := h.registry.Resolve(entity)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape("invalid id"))
		return
	}
	if err := op(resource, id); err != nil {
		c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(err.Error()))
		return
	}
	c.Redirect(http.StatusFound, "/admin/"+entity+"?flash="+url.QueryEscape(flash))
}
