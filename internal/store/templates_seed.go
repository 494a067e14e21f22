package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anuranjan87/7wink/internal/assembly"
	"github.com/anuranjan87/7wink/internal/model"
)

// seedTemplates inserts the starter catalog. ON CONFLICT DO NOTHING keeps
// re-runs from touching existing rows, so the catalog stays read-only
// after the first boot.
func seedTemplates(ctx context.Context, pool *pgxpool.Pool) error {
	for _, tpl := range starterTemplates {
		_, err := pool.Exec(ctx, `
			INSERT INTO templates (id, name, preview_url, shell, behavior, payload)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, tpl.ID, tpl.Name, tpl.PreviewURL, tpl.Shell, tpl.Behavior, tpl.Payload)
		if err != nil {
			return fmt.Errorf("failed to seed template %d: %w", tpl.ID, err)
		}
	}
	return nil
}

func starterShell(title, tagline, accent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background: %s; color: white; }
.container { background: rgba(255,255,255,0.1); padding: 30px; border-radius: 10px; }
h1 { text-align: center; }
</style>
</head>
<body>
<div class="container">
<h1>%s</h1>
<p class="tagline">%s</p>
<div id="sections"></div>
</div>
%s
%s
</body>
</html>`, title, accent, title, tagline, assembly.DataMarker, assembly.BehaviorMarker)
}

const starterBehavior = `(function() {
  var holder = document.getElementById("site-data");
  var mount = document.getElementById("sections");
  if (!holder || !mount) return;
  var data = JSON.parse(holder.textContent);
  (data.sections || []).forEach(function(section) {
    var el = document.createElement("section");
    var heading = document.createElement("h3");
    heading.textContent = section.title;
    var body = document.createElement("p");
    body.textContent = section.body;
    el.appendChild(heading);
    el.appendChild(body);
    mount.appendChild(el);
  });
})();`

var starterTemplates = []*model.Template{
	{
		ID:         1,
		Name:       "Snow & Rainbow",
		PreviewURL: "https://assets.7wink.dev/templates/snow-rainbow.jpg",
		Shell:      starterShell("Snow & Rainbow", "A bright space for everything you make.", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"),
		Behavior:   starterBehavior,
		Payload:    `{"sections":[{"title":"About","body":"Tell visitors who you are."},{"title":"Projects","body":"Show off what you are building."}]}`,
	},
	{
		ID:         2,
		Name:       "Elegant Craft",
		PreviewURL: "https://assets.7wink.dev/templates/elegant-craft.jpg",
		Shell:      starterShell("Elegant Craft", "Understated. Considered. Yours.", "#1c1c1e"),
		Behavior:   starterBehavior,
		Payload:    `{"sections":[{"title":"Portfolio","body":"A quiet gallery for your finest work."},{"title":"Contact","body":"Reach out any time."}]}`,
	},
	{
		ID:         3,
		Name:       "Retro Game",
		PreviewURL: "https://assets.7wink.dev/templates/retro-game.jpg",
		Shell:      starterShell("Retro Game", "Insert coin to continue.", "#120458"),
		Behavior:   starterBehavior,
		Payload:    `{"sections":[{"title":"High Scores","body":"Your wins, pixel by pixel."},{"title":"Press Start","body":"What you are playing with right now."}]}`,
	},
	{
		ID:         4,
		Name:       "Milkshake",
		PreviewURL: "https://assets.7wink.dev/templates/milkshake.jpg",
		Shell:      starterShell("Milkshake", "Sweet, simple, and a little extra.", "#ff8ba7"),
		Behavior:   starterBehavior,
		Payload:    `{"sections":[{"title":"Menu","body":"Everything on offer today."},{"title":"Find Us","body":"Where to get a taste."}]}`,
	},
}
