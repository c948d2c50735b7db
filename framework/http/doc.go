// Package http exposes a container over HTTP for inspection.
//
//	router := routing.New(logger)
//	gohttp.NewBeanHandler(c).Routes(router, "/beans")
//
// GET /beans lists every known bean with its blueprint type and whether it
// has been built yet. GET /beans/{name} returns one entry or 404. Neither
// endpoint instantiates anything.
package http
