package scalar

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// Config for the Scalar API reference page
type Config struct {
	Title string
	Theme string // default, moon, purple, solarized, bluePlanet, deepSpace, saturn, kepler, mars, none
}

func DefaultConfig() Config {
	return Config{
		Title: "Newsletter Backend API",
		Theme: "deepSpace",
	}
}

const scalarTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
    <script id="api-reference" data-url="/docs/openapi.json"></script>
    <script>
        document.getElementById('api-reference').dataset.configuration = JSON.stringify({
            theme: '{{.Theme}}'
        });
    </script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`

// SetupRoutes serves the docs UI and the OpenAPI document generated from the
// handler annotations.
func SetupRoutes(app *fiber.App, config ...Config) {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Title == "" {
		cfg.Title = DefaultConfig().Title
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultConfig().Theme
	}

	tmpl := template.Must(template.New("scalar").Parse(scalarTemplate))

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("Content-Type", "application/json")
		return c.SendString(doc)
	})

	serveUI := func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html")
		return tmpl.Execute(c.Response().BodyWriter(), cfg)
	}
	app.Get("/docs", serveUI)
	app.Get("/docs/", serveUI)
}
