package handlers

import (
	"net/http"

	"coopcycle-service/internal/service"
)

// Alerts writes the X-<app>-alert/-error/-params headers front ends use to
// show notifications after a write.
type Alerts struct {
	App string
}

func (a Alerts) header(suffix string) string {
	return "X-" + a.App + "-" + suffix
}

func (a Alerts) entity(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set(a.header("alert"), a.App+"."+entity+"."+action)
	w.Header().Set(a.header("params"), param)
}

func (a Alerts) Created(w http.ResponseWriter, entity, id string) { a.entity(w, entity, "created", id) }
func (a Alerts) Updated(w http.ResponseWriter, entity, id string) { a.entity(w, entity, "updated", id) }
func (a Alerts) Deleted(w http.ResponseWriter, entity, id string) { a.entity(w, entity, "deleted", id) }

func (a Alerts) Failure(w http.ResponseWriter, alert *service.AlertError) {
	w.Header().Set(a.header("error"), "error."+alert.Key)
	w.Header().Set(a.header("params"), alert.Entity)
}
