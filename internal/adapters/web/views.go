package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"listingpilot/internal/domain"
)

// platformView is one row of the platform pages and GET /api/platforms.
type platformView struct {
	domain.PlatformRules
	AlgorithmFactors []domain.AlgorithmFactor `json:"algorithmFactors"`
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s</title><style>%s</style></head><body><header><a href="/">ListingPilot</a>`+
			`<nav><a href="/platforms">Platforms</a></nav></header><main>`,
			templ.EscapeString(title), pageCSS); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// homePage is the optimize form. The script posts to /api/optimize and
// prints the JSON answer.
func homePage(platforms []domain.Platform) templ.Component {
	return layout("ListingPilot", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Optimize a listing</h1><form id="optimize">`)
		b.WriteString(`<label>Platform <select name="platform">`)
		for _, p := range platforms {
			fmt.Fprintf(&b, `<option value="%[1]s">%[1]s</option>`, templ.EscapeString(string(p)))
		}
		b.WriteString(`</select></label>`)
		b.WriteString(`<label>Mode <select name="mode"><option>optimize</option><option>create</option><option>analyze</option></select></label>`)
		b.WriteString(`<label>Title <input name="title" maxlength="500"></label>`)
		b.WriteString(`<label>Category <input name="category"></label>`)
		b.WriteString(`<label>Description <textarea name="description" rows="8"></textarea></label>`)
		b.WriteString(`<button type="submit">Optimize</button></form><pre id="result"></pre>`)
		b.WriteString(`<script>` + optimizeScript + `</script>`)
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// platformsPage renders the rule table.
func platformsPage(rows []platformView) templ.Component {
	return layout("Platform rules", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Platform rules</h1><table><thead><tr><th>Platform</th><th>Title</th>` +
			`<th>Optimal title</th><th>Min description</th><th>Max tags</th><th>Prohibited words</th></tr></thead><tbody>`)
		for _, r := range rows {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%d-%d</td><td>%d-%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
				templ.EscapeString(r.Name),
				r.TitleRange.Min, r.TitleRange.Max,
				r.OptimalTitle.Min, r.OptimalTitle.Max,
				r.MinDescription, r.MaxTags,
				templ.EscapeString(strings.Join(r.ProhibitedWords, ", ")))
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

const pageCSS = `body{font-family:system-ui,sans-serif;margin:0;color:#1f2328}` +
	`header{display:flex;gap:1rem;padding:.75rem 1.5rem;background:#f6f8fa;border-bottom:1px solid #d0d7de}` +
	`main{max-width:56rem;margin:1.5rem auto;padding:0 1rem}label{display:block;margin:.5rem 0}` +
	`input,select,textarea{display:block;width:100%;margin-top:.25rem}` +
	`table{border-collapse:collapse;width:100%}td,th{border:1px solid #d0d7de;padding:.35rem .5rem;text-align:left}` +
	`pre{white-space:pre-wrap;background:#f6f8fa;padding:1rem}`

const optimizeScript = `document.getElementById("optimize").addEventListener("submit", async (e) => {
  e.preventDefault();
  const f = new FormData(e.target);
  const body = {platform: f.get("platform"), mode: f.get("mode"),
    productData: {title: f.get("title"), description: f.get("description"), category: f.get("category")}};
  const out = document.getElementById("result");
  out.textContent = "Working...";
  const res = await fetch("/api/optimize", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)});
  out.textContent = JSON.stringify(await res.json(), null, 2);
});`
