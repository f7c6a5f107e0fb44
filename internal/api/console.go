package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	domain "github.com/photosphere/connect-admin-console/internal/domain/management"
	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

type consolePage struct {
	Title     string
	View      ViewState
	Regions   []region.Region
	Selection console.Selection

	SelectedRegions   map[string]bool
	SelectedInstances map[string]bool

	Warnings  []string
	Flash     string
	FormError string

	Accounts        []domain.Account
	RoutingProfiles []domain.RoutingProfile
	QuickConnects   []domain.QuickConnect

	Roles             []string
	Queues            []string
	QuickConnectTypes []domain.QuickConnectType
	Usernames         []string
	DefaultPriority   int
	MinPriority       int
	MaxPriority       int

	Year int
}

func (r *Router) newPage(view ViewState, sel console.Selection, warnings []string) consolePage {
	page := consolePage{
		Title:             "Amazon Connect Management Portal",
		View:              view,
		Regions:           r.console.Catalog(),
		Selection:         sel,
		SelectedRegions:   make(map[string]bool, len(sel.Regions)),
		SelectedInstances: make(map[string]bool, len(sel.SelectedInstanceIDs)),
		Warnings:          warnings,
		Accounts:          r.management.Accounts(),
		RoutingProfiles:   r.management.RoutingProfiles(),
		QuickConnects:     r.management.QuickConnects(),
		Roles:             domain.Roles,
		Queues:            domain.Queues,
		QuickConnectTypes: domain.QuickConnectTypes,
		Usernames:         domain.Usernames(),
		DefaultPriority:   domain.DefaultQueuePriority,
		MinPriority:       domain.MinQueuePriority,
		MaxPriority:       domain.MaxQueuePriority,
		Year:              time.Now().Year(),
	}
	for _, code := range sel.Regions {
		page.SelectedRegions[code] = true
	}
	for _, id := range sel.SelectedInstanceIDs {
		page.SelectedInstances[id] = true
	}
	return page
}

// ShowConsole renders the console with the persisted selection.
func (r *Router) ShowConsole(c *gin.Context) {
	collector, sink := r.requestSink()
	sel := r.console.Defaults(c.Request.Context(), sink)
	c.HTML(http.StatusOK, "console.html", r.newPage(ParseViewState(c), sel, collector.Messages()))
}

// UpdateConsoleSelection applies the region and instance pickers.
func (r *Router) UpdateConsoleSelection(c *gin.Context) {
	view := ParseViewState(c)
	collector, sink := r.requestSink()

	sel, err := r.console.Update(c.Request.Context(), c.PostFormArray("region"), c.PostFormArray("instance"), sink)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, region.ErrUnknownRegion) {
			status = http.StatusBadRequest
		}
		sel = r.console.Defaults(c.Request.Context(), sink)
		page := r.newPage(view, sel, collector.Messages())
		page.FormError = err.Error()
		c.HTML(status, "console.html", page)
		return
	}

	c.HTML(http.StatusOK, "console.html", r.newPage(view, sel, collector.Messages()))
}

func (r *Router) SubmitAccountForm(c *gin.Context) {
	form := domain.AccountForm{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Role:            c.PostForm("role"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}
	receipt, err := r.management.SubmitAccount(c.Request.Context(), form)
	r.renderFormResult(c, ViewState{Tab: TabAccounts, Form: FormAccount}, receipt.Message, err)
}

func (r *Router) SubmitRoutingProfileForm(c *gin.Context) {
	form := domain.RoutingProfileForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	for _, q := range c.PostFormArray("queue") {
		priority, err := strconv.Atoi(c.PostForm("priority_" + q))
		if err != nil {
			priority = 0
		}
		form.Queues = append(form.Queues, domain.QueuePriority{Queue: q, Priority: priority})
	}
	receipt, err := r.management.SubmitRoutingProfile(c.Request.Context(), form)
	r.renderFormResult(c, ViewState{Tab: TabRouting, Form: FormRouting}, receipt.Message, err)
}

func (r *Router) SubmitQuickConnectForm(c *gin.Context) {
	form := domain.QuickConnectForm{
		Name:        c.PostForm("name"),
		Type:        c.PostForm("type"),
		Destination: c.PostForm("destination"),
		Description: c.PostForm("description"),
	}
	receipt, err := r.management.SubmitQuickConnect(c.Request.Context(), form)
	r.renderFormResult(c, ViewState{Tab: TabQuickConnects, Form: FormQuickConnect}, receipt.Message, err)
}

// renderFormResult closes the form on success and keeps it open with the
// error otherwise.
func (r *Router) renderFormResult(c *gin.Context, view ViewState, msg string, err error) {
	collector, sink := r.requestSink()
	sel := r.console.Defaults(c.Request.Context(), sink)

	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, domain.ErrInvalidForm) && !errors.Is(err, domain.ErrPasswordMismatch) {
			status = http.StatusInternalServerError
		}
		page := r.newPage(view, sel, collector.Messages())
		page.FormError = formErrorText(err)
		c.HTML(status, "console.html", page)
		return
	}

	page := r.newPage(view.Closed(), sel, collector.Messages())
	page.Flash = msg
	c.HTML(http.StatusOK, "console.html", page)
}

func formErrorText(err error) string {
	if errors.Is(err, domain.ErrPasswordMismatch) {
		return "Passwords do not match"
	}
	return err.Error()
}
