package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ordercrm/app/controllers"
	"github.com/shashiranjanraj/ordercrm/app/routes"
	"github.com/shashiranjanraj/ordercrm/internal/server"
	"github.com/shashiranjanraj/ordercrm/pkg/router"
)

// ordercrm serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// ordercrm route:list — print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Zero-value controllers are enough to build the route table;
		// nothing is invoked.
		r := router.New()
		routes.Register(r, routes.Controllers{
			Auth:      &controllers.AuthController{},
			Dashboard: &controllers.DashboardController{},
			Customer:  &controllers.CustomerController{},
			Order:     &controllers.OrderController{},
			Product:   &controllers.ProductController{},
		})

		names := r.Names()
		if len(names) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		fmt.Fprintln(w, "----\t----")
		for _, name := range names {
			path, _ := r.Path(name)
			fmt.Fprintf(w, "%s\t%s\n", name, path)
		}
		return w.Flush()
	},
}
