package main

import (
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/modelts/modelts/cli/commands"
	"github.com/modelts/modelts/schema"
)

func main() {
	// The standalone binary carries no models of its own. Applications
	// embed the CLI by registering their models and calling Execute from
	// their own main; see examples/blog.
	if err := commands.Execute(schema.NewRegistry()); err != nil {
		os.Exit(1)
	}
}
