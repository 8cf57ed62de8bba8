package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/pkg"
)

// handlers serves the six CRUD routes of one resource.
type handlers[M any, C any, U any, F Filter, R any] struct {
	res   Resource[M, C, U, F, R]
	store Store[M]
	cols  []KeyColumn
}

// list handles GET <base>.
func (h *handlers[M, C, U, F, R]) list(c *gin.Context) {
	var filter F
	if !pkg.BindQuery(c, &filter) {
		return
	}

	plan, err := planList(filter)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rows, total, err := h.store.Query(c.Request.Context(), filter.Predicate(), plan.page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	items := make([]R, 0, len(rows))
	for i := range rows {
		items = append(items, h.res.Represent(&rows[i]))
	}

	c.JSON(http.StatusOK, envelope(plan, items, total))
}

// create handles POST <base>/new.
func (h *handlers[M, C, U, F, R]) create(c *gin.Context) {
	var body C
	if !pkg.BindAndValidate(c, &body) {
		return
	}

	rec, err := h.store.Insert(c.Request.Context(), h.res.FromCreate(body))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.res.Represent(rec))
}

// get handles GET <base>/<id-path>.
func (h *handlers[M, C, U, F, R]) get(c *gin.Context) {
	key, err := KeyFrom(c, h.cols, "")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rec, err := h.store.Find(c.Request.Context(), key)
	if err != nil {
		pkg.Error(c, h.notFound(err))
		return
	}

	c.JSON(http.StatusOK, h.res.Represent(rec))
}

// update handles PATCH <base>/<id-path>. Only the supplied fields change;
// the key always comes from the path, so a record cannot be moved.
func (h *handlers[M, C, U, F, R]) update(c *gin.Context) {
	var body U
	if !pkg.BindAndValidate(c, &body) {
		return
	}

	key, err := KeyFrom(c, h.cols, "")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	diff := h.res.FromUpdate(body).WithKey(key)
	rec, err := h.store.Update(c.Request.Context(), key, diff)
	if err != nil {
		pkg.Error(c, h.notFound(err))
		return
	}

	c.JSON(http.StatusOK, h.res.Represent(rec))
}

// replace handles PUT <base>/<id-path>, creating the record if it is absent.
func (h *handlers[M, C, U, F, R]) replace(c *gin.Context) {
	var body C
	if !pkg.BindAndValidate(c, &body) {
		return
	}

	key, err := KeyFrom(c, h.cols, "")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	diff := h.res.FromCreate(body).WithKey(key)
	rec, err := h.store.Upsert(c.Request.Context(), key, diff)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.res.Represent(rec))
}

// delete handles DELETE <base>/<id-path>.
func (h *handlers[M, C, U, F, R]) delete(c *gin.Context) {
	key, err := KeyFrom(c, h.cols, "")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		pkg.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// notFound names the resource in a not-found error.
func (h *handlers[M, C, U, F, R]) notFound(err error) error {
	if domain.IsNotFound(err) {
		return domain.NewAppError(domain.CodeNotFound, h.res.Name()+" not found", err)
	}
	return err
}
