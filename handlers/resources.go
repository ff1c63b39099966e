package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/internal/api"
	"github.com/balaiwarga/dashboard/internal/storage"
	"github.com/balaiwarga/dashboard/internal/uploads"
	"github.com/balaiwarga/dashboard/internal/validation"
	"github.com/balaiwarga/dashboard/pkg/logger"
)

// Every content resource is the same dashboard pattern: a list view with
// search/pagination and confirmed deletes, and a create-or-edit form that
// validates locally, optionally runs the image-replace protocol, and submits
// to the upstream collection. Resource[T] captures the differences; the
// handlers below are written once.

// Column describes one list-view column; Key is the record's JSON field name.
type Column struct {
	Key   string
	Label string
}

// FormField describes one input of the resource form. Type is one of
// "text", "textarea", "number", "checkbox".
type FormField struct {
	Name  string
	Label string
	Type  string
	Min   *int
	Max   *int
	Rows  int
}

// MinAttr renders the min bound for the form's number input, empty when unset.
func (f FormField) MinAttr() string {
	if f.Min == nil {
		return ""
	}
	return strconv.Itoa(*f.Min)
}

// MaxAttr renders the max bound for the form's number input, empty when unset.
func (f FormField) MaxAttr() string {
	if f.Max == nil {
		return ""
	}
	return strconv.Itoa(*f.Max)
}

// ImageSpec describes the optional image of a resource. Field names the file
// input, URLField the hidden input carrying the currently stored URL, and
// Label feeds the validation messages ("Avatar must be less than 2MB").
type ImageSpec struct {
	Field    string
	URLField string
	Label    string
}

// Resource wires one content type into the generic handler set.
type Resource[T any] struct {
	Slug      string
	TitleOne  string
	TitleMany string
	Col       api.Collection[T]

	Columns []Column
	Fields  []FormField
	Image   *ImageSpec
	// HasValues marks the about section, whose form carries an editable list
	// of child value rows inside the section payload.
	HasValues bool

	// Parse builds a record from the submitted form without validating it.
	Parse func(c *gin.Context) T
	// Validate runs field checks in order and stops at the first failure.
	// hasFile reports whether a replacement image accompanies the submission.
	Validate func(rec *T, isCreate, hasFile bool) *validation.FieldError
	// ImageURL/SetImageURL access the record's stored image URL; nil for
	// resources without media.
	ImageURL    func(rec *T) string
	SetImageURL func(rec *T, url string)
	// SearchText feeds the list view's substring filter.
	SearchText func(rec *T) string
	// Sort optionally re-orders the fetched list client-side.
	Sort func(items []T)
}

const listPageSize = 9

// RegisterResource mounts the five routes of one resource under the
// authenticated dashboard group and adds it to the navigation rail.
func RegisterResource[T any](rg *gin.RouterGroup, env *Env, res Resource[T]) {
	addNavItem(res.Slug, res.TitleMany)
	base := "/" + res.Slug
	rg.GET(base, res.list(env))
	rg.GET(base+"/new", res.form(env))
	rg.POST(base+"/save", res.save(env))
	rg.GET(base+"/:id/edit", res.form(env))
	rg.POST(base+"/:id/save", res.save(env))
	rg.GET(base+"/:id/delete", res.confirmDelete(env))
	rg.POST(base+"/:id/delete", res.delete(env))
}

func (res Resource[T]) listPath() string { return "/dashboard/" + res.Slug }

// toRow converts a record to its JSON field map for the templates.
func toRow[T any](rec *T) gin.H {
	b, err := json.Marshal(rec)
	if err != nil {
		return gin.H{}
	}
	var m gin.H
	if err := json.Unmarshal(b, &m); err != nil {
		return gin.H{}
	}
	// JSON null (nullable columns) would otherwise render as "<no value>"
	for k, v := range m {
		if v == nil {
			m[k] = ""
		}
	}
	return m
}

// list fetches all records and renders them. An empty or absent payload is
// the empty state, never an error; a failed fetch renders an inline error
// banner over an empty list.
func (res Resource[T]) list(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := res.Col.GetAll(env.upstreamCtx(c))
		fetchErr := ""
		if err != nil {
			logger.Errorf("list %s: %v", res.Slug, err)
			fetchErr = fmt.Sprintf("Failed to load %s", strings.ToLower(res.TitleMany))
			items = nil
		}
		if res.Sort != nil {
			res.Sort(items)
		}

		query := strings.TrimSpace(c.Query("q"))
		if query != "" && res.SearchText != nil {
			q := strings.ToLower(query)
			filtered := items[:0:0]
			for i := range items {
				if strings.Contains(strings.ToLower(res.SearchText(&items[i])), q) {
					filtered = append(filtered, items[i])
				}
			}
			items = filtered
		}

		total := len(items)
		pageCount := (total + listPageSize - 1) / listPageSize
		if pageCount < 1 {
			pageCount = 1
		}
		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		if page > pageCount {
			page = pageCount
		}
		start := (page - 1) * listPageSize
		end := start + listPageSize
		if end > total {
			end = total
		}

		rows := make([]gin.H, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, toRow(&items[i]))
		}

		imageKey := ""
		if res.Image != nil {
			imageKey = res.Image.URLField
		}
		env.render(c, http.StatusOK, "list", gin.H{
			"Title":     res.TitleMany,
			"Slug":      res.Slug,
			"TitleOne":  res.TitleOne,
			"TitleMany": res.TitleMany,
			"Columns":   res.Columns,
			"Rows":      rows,
			"ImageKey":  imageKey,
			"Query":     query,
			"Page":      page,
			"PageCount": pageCount,
			"HasPrev":   page > 1,
			"HasNext":   page < pageCount,
			"PrevPage":  page - 1,
			"NextPage":  page + 1,
			"Error":     fetchErr,
		})
	}
}

// form renders the create form (no id in the route) or the edit form
// (record fetched by id before the form is shown).
func (res Resource[T]) form(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec T
		id := c.Param("id")
		if id != "" {
			p, err := res.Col.GetByID(env.upstreamCtx(c), id)
			if err != nil {
				logger.Errorf("load %s %s: %v", res.Slug, id, err)
				redirectWithFlash(c, res.listPath(), Flash{Kind: "error", Title: "Error", Message: fmt.Sprintf("Failed to load %s", strings.ToLower(res.TitleOne))})
				return
			}
			rec = *p
		}
		res.renderForm(c, env, &rec, id, "", http.StatusOK)
	}
}

func (res Resource[T]) renderForm(c *gin.Context, env *Env, rec *T, id, errMsg string, status int) {
	action := res.listPath() + "/save"
	if id != "" {
		action = res.listPath() + "/" + id + "/save"
	}
	values := toRow(rec)
	if res.HasValues {
		// a null child list marshals as JSON null; the value-rows range needs
		// a slice to walk
		if _, ok := values["values"].([]any); !ok {
			values["values"] = []any{}
		}
	}
	data := gin.H{
		"Slug":      res.Slug,
		"TitleOne":  res.TitleOne,
		"TitleMany": res.TitleMany,
		"Fields":    res.Fields,
		"Values":    values,
		"IsEdit":    id != "",
		"ID":        id,
		"Action":    action,
		"ListPath":  res.listPath(),
		"Error":     errMsg,
		"CSRF":      env.csrf(c),
		"HasValues": res.HasValues,
	}
	if id != "" {
		data["Title"] = "Edit " + res.TitleOne
	} else {
		data["Title"] = "New " + res.TitleOne
	}
	if res.Image != nil {
		data["Image"] = res.Image
		if res.ImageURL != nil {
			data["ImageCurrent"] = res.ImageURL(rec)
		}
	}
	env.render(c, status, "form", data)
}

// save handles both create and update: CSRF check, parse, ordered
// validation (short-circuits before any network call), the image-replace
// protocol when a file accompanies the form, then the upstream write.
func (res Resource[T]) save(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		isCreate := id == ""

		if !env.checkCSRF(c) {
			redirectWithFlash(c, res.listPath(), Flash{Kind: "error", Title: "Error", Message: "The form expired, please try again"})
			return
		}

		rec := res.Parse(c)

		var fh *multipart.FileHeader
		if res.Image != nil {
			if f, err := c.FormFile(res.Image.Field); err == nil && f != nil && f.Size > 0 {
				fh = f
			}
		}
		hasFile := fh != nil

		if verr := res.Validate(&rec, isCreate, hasFile); verr != nil {
			res.renderForm(c, env, &rec, id, verr.Message, http.StatusOK)
			return
		}

		if hasFile {
			oldURL := ""
			if !isCreate && res.ImageURL != nil {
				oldURL = res.ImageURL(&rec)
			}
			result, err := uploads.Replace(env.upstreamCtx(c), env.Store, fh, res.Image.Label, env.Cfg.Upload.MaxSizeMB, oldURL)
			if result != nil && res.SetImageURL != nil {
				// keep the uploaded URL in form state even when the old-image
				// cleanup failed, so a retry does not re-upload
				res.SetImageURL(&rec, result.URL)
			}
			if err != nil {
				res.renderForm(c, env, &rec, id, err.Error(), http.StatusOK)
				return
			}
		}

		var err error
		if isCreate {
			_, err = res.Col.Create(env.upstreamCtx(c), &rec)
		} else {
			_, err = res.Col.Update(env.upstreamCtx(c), id, &rec)
		}
		if err != nil {
			res.renderForm(c, env, &rec, id, err.Error(), http.StatusOK)
			return
		}

		verb := "updated"
		if isCreate {
			verb = "created"
		}
		redirectWithFlash(c, res.listPath(), Flash{Kind: "success", Title: "Success", Message: fmt.Sprintf("%s %s successfully", res.TitleOne, verb)})
	}
}

// confirmDelete shows the blocking confirmation page. Cancelling is simply
// navigating back; nothing is touched until the confirmation is posted.
func (res Resource[T]) confirmDelete(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		env.render(c, http.StatusOK, "confirm", gin.H{
			"Title":    "Delete " + res.TitleOne,
			"TitleOne": res.TitleOne,
			"ID":       id,
			"Action":   res.listPath() + "/" + id + "/delete",
			"ListPath": res.listPath(),
			"CSRF":     env.csrf(c),
		})
	}
}

// delete removes the record's storage object first (derived key), then the
// record itself. Any failure leaves the record in place and reports an error
// notification; there is no optimistic removal.
func (res Resource[T]) delete(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fail := func(msg string) {
			redirectWithFlash(c, res.listPath(), Flash{Kind: "error", Title: "Error", Message: msg})
		}

		if !env.checkCSRF(c) {
			fail("The form expired, please try again")
			return
		}

		ctx := env.upstreamCtx(c)
		rec, err := res.Col.GetByID(ctx, id)
		if err != nil {
			fail(fmt.Sprintf("Failed to delete %s", strings.ToLower(res.TitleOne)))
			return
		}

		if res.ImageURL != nil {
			if u := res.ImageURL(rec); u != "" {
				if key := storage.KeyFromURL(u); key != "" {
					if err := env.Store.Delete(ctx, key); err != nil {
						fail(err.Error())
						return
					}
				}
			}
		}

		if err := res.Col.Delete(ctx, id); err != nil {
			fail(err.Error())
			return
		}

		redirectWithFlash(c, res.listPath(), Flash{Kind: "success", Title: "Success", Message: fmt.Sprintf("%s deleted successfully", res.TitleOne)})
	}
}
