package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-coopsite/internal/blog"
	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/openapi"
	"github.com/goliatone/go-coopsite/internal/schema"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/internal/site"
)

var apiPages = map[sections.Page]bool{
	sections.PageHome:    true,
	sections.PageAbout:   true,
	sections.PagePilot:   true,
	sections.PageContact: true,
}

func requestLang(r *http.Request) locale.Code {
	return locale.CodeOrDefault(r.Context(), locale.Primary)
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) handlePage(w http.ResponseWriter, r *http.Request) {
	page := sections.Page(strings.ToLower(chi.URLParam(r, "page")))
	if !apiPages[page] {
		writeError(w, site.ErrUnknownPage)
		return
	}
	view, err := api.site.Render(r.Context(), page, requestLang(r))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Cache-Control", api.cacheControl)
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleBlog(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	view := api.site.Blog(r.Context(), requestLang(r), site.BlogOptions{
		Query: blog.Query{
			Category: values.Get("category"),
			Tag:      values.Get("tag"),
			Search:   values.Get("q"),
		},
		Page:    intParam(r, "page"),
		PerPage: intParam(r, "per_page"),
	})
	w.Header().Set("Cache-Control", api.cacheControl)
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handlePost(w http.ResponseWriter, r *http.Request) {
	view, err := api.site.Post(r.Context(), requestLang(r), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Cache-Control", api.cacheControl)
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleContact(w http.ResponseWriter, r *http.Request) {
	if !api.contact.Enabled() {
		writeError(w, contact.ErrContactDisabled)
		return
	}
	var cmd contact.SubmitCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: "request body must be a JSON object"})
		return
	}
	if strings.TrimSpace(cmd.Language) == "" {
		cmd.Language = requestLang(r).String()
	}
	if fields := contact.FieldErrors(cmd.Validate()); len(fields) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: "the submission is invalid",
			Issues:  fieldIssues(fields),
		})
		return
	}

	receipt, err := api.contact.Submit(r.Context(), cmd)
	if err != nil {
		status, payload := mapError(err)
		if status == http.StatusInternalServerError {
			api.logger.Warn("http.contact.delivery_failed", "error", err, "reference", receipt.Reference)
			status = http.StatusBadGateway
			payload = errorResponse{Error: "delivery_failed", Message: "the message could not be delivered, please try again later"}
		}
		writeJSON(w, status, payload)
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

type schemaResponse struct {
	Types       []schema.Type             `json:"types"`
	JSONSchemas map[string]map[string]any `json:"jsonSchemas"`
}

func (api *API) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, schemaResponse{
		Types:       schema.Catalog(),
		JSONSchemas: schema.JSONSchemas(),
	})
}

func (api *API) handleSchemaType(w http.ResponseWriter, r *http.Request) {
	typ, ok := schema.Lookup(chi.URLParam(r, "type"))
	if !ok {
		writeError(w, schema.ErrUnknownType)
		return
	}
	writeJSON(w, http.StatusOK, schema.JSONSchema(typ))
}

func (api *API) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, openapi.Describe(APIVersion))
}
