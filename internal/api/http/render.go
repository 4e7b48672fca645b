package httpapi

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/route-weather/internal/common"
	"github.com/i474232898/route-weather/internal/weather"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"opt":   common.FormatOptional,
	"num":   common.FormatFloat,
	"yesno": common.YesNo,
	"dict":  dict,
}).ParseFS(templatesFS, "templates/index.html"))

// indexPage is the view model for the index page.
type indexPage struct {
	Comparison *weather.CityComparison
	Error      string
}

func renderIndex(c *fiber.Ctx, status int, page indexPage) error {
	var buf bytes.Buffer
	if err := indexTmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires key/value pairs")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
