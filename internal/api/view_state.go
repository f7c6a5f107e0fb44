package api

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	TabAccounts      = "accounts"
	TabRouting       = "routing"
	TabQuickConnects = "quickconnects"

	FormAccount      = "account"
	FormRouting      = "routing"
	FormQuickConnect = "quickconnect"
)

var formTabs = map[string]string{
	FormAccount:      TabAccounts,
	FormRouting:      TabRouting,
	FormQuickConnect: TabQuickConnects,
}

// ViewState is the presentation state of one console page. It travels in the
// query string, so the server keeps nothing between requests.
type ViewState struct {
	Tab  string
	Form string
}

// ParseViewState reads ?tab= and ?form=, dropping unknown values. An open
// form selects its own tab.
func ParseViewState(c *gin.Context) ViewState {
	v := ViewState{Tab: TabAccounts}
	switch tab := c.Query("tab"); tab {
	case TabAccounts, TabRouting, TabQuickConnects:
		v.Tab = tab
	}
	if tab, ok := formTabs[c.Query("form")]; ok {
		v.Form = c.Query("form")
		v.Tab = tab
	}
	return v
}

// FormOpen reports whether the add form named form is shown.
func (v ViewState) FormOpen(form string) bool {
	return v.Form == form
}

// ToggleURL links to the same page with form shown or hidden.
func (v ViewState) ToggleURL(form string) string {
	next := ViewState{Tab: v.Tab}
	if v.Form != form {
		next.Form = form
		next.Tab = formTabs[form]
	}
	return next.URL()
}

// TabURL links to tab with every form closed.
func (v ViewState) TabURL(tab string) string {
	return ViewState{Tab: tab}.URL()
}

// Closed returns v with the form hidden, as after a successful save.
func (v ViewState) Closed() ViewState {
	return ViewState{Tab: v.Tab}
}

func (v ViewState) URL() string {
	q := url.Values{}
	if v.Tab != "" && v.Tab != TabAccounts {
		q.Set("tab", v.Tab)
	}
	if v.Form != "" {
		q.Set("form", v.Form)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
