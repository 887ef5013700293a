package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/interface/middleware"
	"github.com/oksasatya/microservices-console/internal/interface/view"
)

const htmlContentType = "text/html; charset=utf-8"

// UIHandler serves the console page, its form posts and the list fragments.
// Every route runs behind middleware.Session.
type UIHandler struct {
	Renderer       *view.Renderer
	Logger         *logrus.Logger
	AppName        string
	PollIntervalMs int
}

func NewUIHandler(r *view.Renderer, logger *logrus.Logger, appName string, pollEvery time.Duration) *UIHandler {
	return &UIHandler{Renderer: r, Logger: logger, AppName: appName, PollIntervalMs: pollMillis(pollEvery)}
}

// pollMillis is the page's status refresh period; never 0, which would spin the browser.
func pollMillis(d time.Duration) int {
	return int(max(d.Milliseconds(), 1))
}

func (h *UIHandler) controller(c *gin.Context) *application.Controller {
	ctrl, ok := middleware.ControllerFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		h.Logger.WithField("path", c.Request.URL.Path).Error("no page session bound")
		return nil
	}
	return ctrl
}

func (h *UIHandler) render(c *gin.Context, status int, name string, data any) {
	out, err := h.Renderer.RenderString(name, data)
	if err != nil {
		h.Logger.WithError(err).WithField("template", name).Error("render failed")
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, htmlContentType, []byte(out))
}

func (h *UIHandler) page(c *gin.Context, ctrl *application.Controller, status int) {
	v := ctrl.View()
	out, err := h.Renderer.RenderString(view.PageTemplate, view.Page{
		AppName:        h.AppName,
		View:           v,
		Tabs:           application.Tabs,
		PollIntervalMs: h.PollIntervalMs,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("template", view.PageTemplate).Error("render failed")
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, htmlContentType, []byte(out))
	ctrl.ClearAlert(v.Alert)
}

// Index renders the whole page and consumes the pending alert.
func (h *UIHandler) Index(c *gin.Context) {
	if ctrl := h.controller(c); ctrl != nil {
		h.page(c, ctrl, http.StatusOK)
	}
}

// ShowTab activates the named tab. Unknown names leave the page as it was.
func (h *UIHandler) ShowTab(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	if err := ctrl.ShowTab(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, application.ErrUnknownTab) {
			h.page(c, ctrl, http.StatusNotFound)
			return
		}
		h.Logger.WithError(err).Error("show tab")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UIHandler) SubmitUser(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	var form application.UserForm
	// all fields are strings; binding only fails on a malformed body
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	ctrl.SubmitUser(c.Request.Context(), form)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UIHandler) SubmitProduct(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	var form application.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	ctrl.SubmitProduct(c.Request.Context(), form)
	c.Redirect(http.StatusSeeOther, "/")
}

// ConfirmDeleteUser renders the confirmation dialog for a user.
func (h *UIHandler) ConfirmDeleteUser(c *gin.Context) {
	h.confirm(c, application.PromptDeleteUser, "/users/", application.TabUsers)
}

// ConfirmDeleteProduct renders the confirmation dialog for a product.
func (h *UIHandler) ConfirmDeleteProduct(c *gin.Context) {
	h.confirm(c, application.PromptDeleteProduct, "/products/", application.TabProducts)
}

func (h *UIHandler) confirm(c *gin.Context, prompt, prefix string, back application.Tab) {
	id := c.Param("id")
	h.render(c, http.StatusOK, view.ConfirmTemplate, view.Confirm{
		AppName: h.AppName,
		Prompt:  prompt,
		Action:  prefix + id + "/delete",
		Back:    "/tabs/" + string(back),
	})
}

// formConfirmer answers the prompt from the posted confirm field.
func formConfirmer(c *gin.Context) application.Confirmer {
	return application.ConfirmFunc(func(string) bool {
		return c.PostForm("confirm") == "yes"
	})
}

func (h *UIHandler) DeleteUser(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	ctrl.DeleteUser(c.Request.Context(), entity.ID(c.Param("id")), formConfirmer(c))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UIHandler) DeleteProduct(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	ctrl.DeleteProduct(c.Request.Context(), entity.ID(c.Param("id")), formConfirmer(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// UsersFragment reloads the users list and returns only its markup. A session
// opened by this very request has just loaded it.
func (h *UIHandler) UsersFragment(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	if !c.GetBool(middleware.SessionOpenedKey) {
		ctrl.LoadUsers(c.Request.Context())
	}
	h.render(c, http.StatusOK, view.UsersTemplate, ctrl.UsersPanel())
}

// ProductsFragment reloads the products list and returns only its markup.
func (h *UIHandler) ProductsFragment(c *gin.Context) {
	ctrl := h.controller(c)
	if ctrl == nil {
		return
	}
	ctrl.LoadProducts(c.Request.Context())
	h.render(c, http.StatusOK, view.ProductsTemplate, ctrl.ProductsPanel())
}

// Health is the liveness probe of the console itself.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
