package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

var markClasses = map[mark]string{
	markStone:    "void",
	markWall:     "wall",
	markFloor:    "floor",
	markDark:     "floor-dark",
	markCorridor: "corridor",
	markDoor:     "door",
	markStairs:   "stairs",
	markFeature:  "feature",
	markLiquid:   "water",
	markLava:     "lava",
	markTree:     "tree",
	markTrap:     "trap",
	markObject:   "item",
	markMonster:  "monster",
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .meta { color: #888; margin-bottom: 20px; }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .wall { color: #666; }
        .floor { color: #ccc; }
        .floor-dark { color: #555; }
        .corridor { color: #888; font-weight: bold; }
        .door { color: #ffff00; font-weight: bold; }
        .stairs { color: #00ff00; font-weight: bold; }
        .feature { color: #00ffff; }
        .water { color: #4444ff; }
        .lava { color: #ff4444; }
        .tree { color: #00aa00; }
        .trap { color: #ff66ff; }
        .item { color: #bb86fc; font-weight: bold; }
        .monster { color: #ff4444; font-weight: bold; }
        .void { color: #1a1a2e; }
    </style>
</head>
<body>
`

// WriteHTML renders l as a standalone HTML page.
func WriteHTML(w io.Writer, l *level.Level) error {
	var sb strings.Builder
	title := gotext.Get("Level %d", l.Depth())
	fmt.Fprintf(&sb, htmlHead, html.EscapeString(title))
	fmt.Fprintf(&sb, `    <div class="header">%s</div>`+"\n", html.EscapeString(title))
	fmt.Fprintf(&sb, `    <div class="meta">seed %d, %d draws, %d rooms</div>`+"\n", l.Seed(), l.DrawCount(), len(l.Rooms()))

	sb.WriteString(`    <div class="map-container">` + "\n")
	o := overlays(l)
	for y := 0; y < world.Rows; y++ {
		sb.WriteString(`        <div class="map-row">`)
		for x := 0; x < world.Cols; x++ {
			r, m := o.symbolAt(l, x, y)
			fmt.Fprintf(&sb, `<span class="%s">%s</span>`, markClasses[m], html.EscapeString(string(r)))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString(`    </div>` + "\n")
	sb.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveScreenshotHTML writes the HTML page for l to filename.
func SaveScreenshotHTML(l *level.Level, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteHTML(f, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
