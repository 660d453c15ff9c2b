// Package migrations embebe los archivos SQL del esquema para ejecutarlos
// con golang-migrate al arrancar.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
