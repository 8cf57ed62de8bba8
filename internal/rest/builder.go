package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Resource describes how one entity is exposed over REST.
//
//   - M is the stored GORM model.
//   - C is the create payload; it is also the full body of a replace.
//   - U is the update payload, normally made of Field values.
//   - F is the list filter, normally embedding PageQuery.
//   - R is the representation sent to clients.
type Resource[M any, C any, U any, F Filter, R any] interface {
	// Name is the singular resource name used in messages.
	Name() string
	// KeyColumns lists the primary key columns in declared order.
	KeyColumns() []KeyColumn
	// FromCreate assigns every column of a new record.
	FromCreate(C) Diff
	// FromUpdate assigns only the columns present in the payload.
	FromUpdate(U) Diff
	// Represent converts a stored record into its client representation.
	Represent(*M) R
}

// Route is one entry of a resource's route table.
type Route struct {
	Method   string
	Path     string
	Name     string
	Handlers gin.HandlersChain
}

// Builder holds the route table of one resource.
type Builder struct {
	name   string
	routes []Route
}

// New builds the route table for res mounted at base:
//
//	GET    <base>            list
//	POST   <base>/new        create
//	GET    <base>/<id-path>  get
//	PATCH  <base>/<id-path>  update
//	PUT    <base>/<id-path>  replace
//	DELETE <base>/<id-path>  delete
//
// New panics if res declares no key columns.
func New[M any, C any, U any, F Filter, R any](base string, res Resource[M, C, U, F, R], store Store[M]) *Builder {
	if res == nil || store == nil {
		panic("rest: New requires a non-nil resource and store")
	}
	cols := res.KeyColumns()
	if len(cols) == 0 {
		panic("rest: resource " + res.Name() + " declares no key columns")
	}

	h := &handlers[M, C, U, F, R]{res: res, store: store, cols: cols}
	extract := ExtractKey(cols, "")
	idPath := base + "/" + IDPath(cols, "")
	name := res.Name()

	return &Builder{
		name: name,
		routes: []Route{
			{Method: http.MethodGet, Path: base, Name: name + ".list", Handlers: gin.HandlersChain{h.list}},
			{Method: http.MethodPost, Path: base + "/new", Name: name + ".create", Handlers: gin.HandlersChain{h.create}},
			{Method: http.MethodGet, Path: idPath, Name: name + ".get", Handlers: gin.HandlersChain{extract, h.get}},
			{Method: http.MethodPatch, Path: idPath, Name: name + ".update", Handlers: gin.HandlersChain{extract, h.update}},
			{Method: http.MethodPut, Path: idPath, Name: name + ".replace", Handlers: gin.HandlersChain{extract, h.replace}},
			{Method: http.MethodDelete, Path: idPath, Name: name + ".delete", Handlers: gin.HandlersChain{extract, h.delete}},
		},
	}
}

// Name returns the resource name.
func (b *Builder) Name() string {
	return b.name
}

// Routes returns a copy of the route table.
func (b *Builder) Routes() []Route {
	return append([]Route(nil), b.routes...)
}

// Register binds every route to group.
func (b *Builder) Register(group gin.IRoutes) {
	for _, r := range b.routes {
		group.Handle(r.Method, r.Path, r.Handlers...)
	}
}
