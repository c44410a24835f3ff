package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/apimgr/homunculus/src/banner"
	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/display"
	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/paths"
	"github.com/apimgr/homunculus/src/server"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the HTTP server",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{createConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cliContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			tr := i18n.NewManager(a.cfg.I18n.DefaultLanguage, i18n.DefaultSupportedLanguages())
			if err := tr.LoadFromFS(i18n.LocalesFS(), "locales"); err != nil {
				return fmt.Errorf("load translations: %w", err)
			}

			srv, err := server.New(a.cfg, rt.provider, tr, rt.logs)
			if err != nil {
				return err
			}
			banner.Print(cmd.OutOrStdout(), a.startupBanner(rt), display.Detect().Width(0))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().String("address", "", "listen address")
	cmd.Flags().Int("port", 0, "listen port")
	_ = a.v.BindPFlag("server.address", cmd.Flags().Lookup("address"))
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) startupBanner(rt *session) banner.Config {
	routes := []banner.Route{
		{Name: "API", Path: "/api/v1"},
		{Name: "CSS", Path: "/theme.css"},
	}
	if a.cfg.Server.GraphQL {
		routes = append(routes, banner.Route{Name: "GraphQL", Path: "/graphql"})
	}
	if a.cfg.Server.Metrics {
		routes = append(routes, banner.Route{Name: "Metrics", Path: "/metrics"})
	}

	return banner.Config{
		AppName: paths.ProjectName,
		Version: config.Version,
		URL:     "http://" + a.cfg.GetAddress(),
		Routes:  routes,
		Details: []banner.Detail{
			{Label: "Storage", Value: a.cfg.Storage.Backend},
			{Label: "Scheme", Value: rt.provider.Scheme().ID},
			{Label: "Language", Value: a.cfg.I18n.DefaultLanguage},
		},
	}
}
