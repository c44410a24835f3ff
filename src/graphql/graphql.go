package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/apimgr/homunculus/src/provider"
	"github.com/apimgr/homunculus/src/theme"
)

// ThemeService is the theme state the schema reads and mutates
type ThemeService interface {
	Snapshot() provider.Snapshot
	Schemes() []theme.Scheme
	SetColorScheme(ctx context.Context, id string) provider.Snapshot
	ApplySettings(ctx context.Context, s theme.Settings) provider.Snapshot
	ResetSettings(ctx context.Context) provider.Snapshot
}

// NewSchema builds the GraphQL schema over svc
func NewSchema(svc ThemeService) (graphql.Schema, error) {
	slotType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "ColorSlot",
		Description: "A named color inside a scheme",
		Fields: graphql.Fields{
			"name":  &graphql.Field{Type: graphql.String},
			"hex":   &graphql.Field{Type: graphql.String},
			"rgb":   &graphql.Field{Type: graphql.String},
			"usage": &graphql.Field{Type: graphql.String},
			"role": &graphql.Field{
				Type:        graphql.String,
				Description: "Semantic role, empty when the slot only has a usage text",
			},
		},
	})

	schemeType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "ColorScheme",
		Description: "A named palette",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"light": &graphql.Field{
				Type:        graphql.Boolean,
				Description: "Whether the scheme renders in light mode",
			},
			"slots": &graphql.Field{Type: graphql.NewList(slotType)},
		},
	})

	settingsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ThemeSettings",
		Fields: graphql.Fields{
			"fontFamily":   &graphql.Field{Type: graphql.String},
			"fontSize":     &graphql.Field{Type: graphql.Int},
			"fontWeight":   &graphql.Field{Type: graphql.Int},
			"borderRadius": &graphql.Field{Type: graphql.Int},
			"animations":   &graphql.Field{Type: graphql.Boolean},
			"contrast":     &graphql.Field{Type: graphql.String},
			"density":      &graphql.Field{Type: graphql.String},
		},
	})

	paletteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Palette",
		Fields: graphql.Fields{
			"mode":          &graphql.Field{Type: graphql.String},
			"primary":       &graphql.Field{Type: graphql.String},
			"secondary":     &graphql.Field{Type: graphql.String},
			"background":    &graphql.Field{Type: graphql.String},
			"paper":         &graphql.Field{Type: graphql.String},
			"textPrimary":   &graphql.Field{Type: graphql.String},
			"textSecondary": &graphql.Field{Type: graphql.String},
		},
	})

	themeType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Theme",
		Description: "The live theme state",
		Fields: graphql.Fields{
			"schemeId": &graphql.Field{
				Type:        graphql.String,
				Description: "The selected scheme id exactly as stored",
			},
			"scheme":     &graphql.Field{Type: schemeType},
			"settings":   &graphql.Field{Type: settingsType},
			"palette":    &graphql.Field{Type: paletteType},
			"transition": &graphql.Field{Type: graphql.String},
			"css": &graphql.Field{
				Type:        graphql.String,
				Description: "Custom property block for :root",
			},
			"updatedAt": &graphql.Field{Type: graphql.String},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"schemes": &graphql.Field{
				Type:        graphql.NewList(schemeType),
				Description: "Every registered scheme in catalog order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					schemes := svc.Schemes()
					out := make([]interface{}, len(schemes))
					for i, s := range schemes {
						out[i] = schemeMap(s)
					}
					return out, nil
				},
			},
			"scheme": &graphql.Field{
				Type:        schemeType,
				Description: "Look up a scheme; unknown ids give the default scheme",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return schemeMap(theme.GetSchemeByID(id)), nil
				},
			},
			"theme": &graphql.Field{
				Type: themeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return snapshotMap(svc.Snapshot()), nil
				},
			},
		},
	})

	rootMutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"setColorScheme": &graphql.Field{
				Type: themeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return snapshotMap(svc.SetColorScheme(sourceContext(p.Context), id)), nil
				},
			},
			"applySettings": &graphql.Field{
				Type:        themeType,
				Description: "Apply settings; omitted arguments keep their current value",
				Args: graphql.FieldConfigArgument{
					"fontFamily":   &graphql.ArgumentConfig{Type: graphql.String},
					"fontSize":     &graphql.ArgumentConfig{Type: graphql.Int},
					"fontWeight":   &graphql.ArgumentConfig{Type: graphql.Int},
					"borderRadius": &graphql.ArgumentConfig{Type: graphql.Int},
					"animations":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"contrast":     &graphql.ArgumentConfig{Type: graphql.String},
					"density":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s := mergeSettings(svc.Snapshot().Settings, p.Args)
					if err := s.Validate(); err != nil {
						return nil, err
					}
					return snapshotMap(svc.ApplySettings(sourceContext(p.Context), s)), nil
				},
			},
			"resetSettings": &graphql.Field{
				Type: themeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return snapshotMap(svc.ResetSettings(sourceContext(p.Context))), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMutation,
	})
}

func sourceContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return provider.WithSource(ctx, provider.SourceGraphQL)
}

// mergeSettings overlays the supplied arguments on base
func mergeSettings(base theme.Settings, args map[string]interface{}) theme.Settings {
	if v, ok := args["fontFamily"].(string); ok {
		base.FontFamily = v
	}
	if v, ok := args["fontSize"].(int); ok {
		base.FontSize = v
	}
	if v, ok := args["fontWeight"].(int); ok {
		base.FontWeight = v
	}
	if v, ok := args["borderRadius"].(int); ok {
		base.BorderRadius = v
	}
	if v, ok := args["animations"].(bool); ok {
		base.Animations = v
	}
	if v, ok := args["contrast"].(string); ok {
		base.Contrast = v
	}
	if v, ok := args["density"].(string); ok {
		base.Density = v
	}
	return base
}

func schemeMap(s theme.Scheme) map[string]interface{} {
	slots := make([]interface{}, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = map[string]interface{}{
			"name":  slot.Name,
			"hex":   slot.Hex,
			"rgb":   slot.RGB,
			"usage": slot.Usage,
			"role":  string(slot.Role),
		}
	}
	return map[string]interface{}{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"light":       theme.IsLight(s.ID),
		"slots":       slots,
	}
}

func snapshotMap(snap provider.Snapshot) map[string]interface{} {
	s := snap.Settings
	pal := snap.Resolved.Palette
	return map[string]interface{}{
		"schemeId": snap.SchemeID,
		"scheme":   schemeMap(snap.Scheme),
		"settings": map[string]interface{}{
			"fontFamily":   s.FontFamily,
			"fontSize":     s.FontSize,
			"fontWeight":   s.FontWeight,
			"borderRadius": s.BorderRadius,
			"animations":   s.Animations,
			"contrast":     s.Contrast,
			"density":      s.Density,
		},
		"palette": map[string]interface{}{
			"mode":          pal.Mode,
			"primary":       pal.Primary,
			"secondary":     pal.Secondary,
			"background":    pal.Background,
			"paper":         pal.Paper,
			"textPrimary":   pal.TextPrimary,
			"textSecondary": pal.TextSecondary,
		},
		"transition": snap.Resolved.Transition,
		"css":        snap.Resolved.GenerateCSS(),
		"updatedAt":  snap.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Handler serves the GraphQL endpoint on POST and GraphiQL on GET
func Handler(svc ThemeService) (http.HandlerFunc, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleQuery(w, r, schema)
		case http.MethodGet:
			serveGraphiQL(w, svc.Snapshot().Resolved)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, nil
}

// handleQuery executes a GraphQL request body
func handleQuery(w http.ResponseWriter, r *http.Request, schema graphql.Schema) {
	var params struct {
		Query         string                 `json:"query"`
		Variables     map[string]interface{} `json:"variables"`
		OperationName string                 `json:"operationName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  params.Query,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// serveGraphiQL serves the GraphiQL interface styled with the live theme
func serveGraphiQL(w http.ResponseWriter, resolved theme.Resolved) {
	page := `<!DOCTYPE html>
<html lang="en" data-theme="` + html.EscapeString(resolved.SchemeID) + `">
<head>
	<meta charset="UTF-8">
	<title>Homunculus - GraphiQL</title>
	<link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css">
	<style>` + resolved.GenerateCSS() + graphiqlCSS + `</style>
</head>
<body>
	<div id="graphiql"></div>
	<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
	<script>
		const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
		ReactDOM.render(
			React.createElement(GraphiQL, { fetcher: fetcher }),
			document.getElementById('graphiql')
		);
	</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

const graphiqlCSS = `
.graphiql-container {
	background: var(--color-background);
	color: var(--color-text-primary);
	font-family: var(--font-family);
}
.graphiql-container .graphiql-sidebar,
.graphiql-container .graphiql-editors {
	background: var(--color-paper);
}
.graphiql-container .graphiql-execute-button {
	background: var(--color-primary);
	border-radius: var(--border-radius);
}
`
