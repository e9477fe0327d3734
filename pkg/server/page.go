package server

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// pageTmpl wraps a diagram in the resizable container. The script reports the
// container box after each paint until the server answers "centered", then
// shows the SVG and lets the user drag the canvas.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: system-ui, sans-serif; margin: 1.5rem; }
        .tree-container {
            height: 400px;
            display: inline-flex;
            min-width: 600px;
            border: 1px solid rgba(100, 100, 100, 0.2);
            overflow: hidden;
            resize: both;
            opacity: 0.9;
        }
        .tree-container svg { cursor: grab; }
        .tree-container svg.dragging { cursor: grabbing; }
    </style>
</head>
<body>
    <div class="tree-container" id="container"></div>
    <script>
    (function () {
        const id = {{.ID}};
        const box = document.getElementById("container");
        let centered = false;

        async function show() {
            const res = await fetch("/api/diagrams/" + id + "/svg");
            box.innerHTML = await res.text();
            const svg = box.querySelector("svg");
            if (svg) pannable(svg);
        }

        async function measure() {
            if (centered) return;
            const b = box.getBoundingClientRect();
            const res = await fetch("/api/diagrams/" + id + "/measure", {
                method: "POST",
                headers: { "Content-Type": "application/json" },
                body: JSON.stringify({ width: b.width, height: b.height }),
            });
            const st = await res.json();
            centered = st.state === "centered";
            await show();
        }

        function pannable(svg) {
            const canvas = svg.querySelector(".tree-canvas");
            if (!canvas) return;
            const m = /translate\(([-\d.]+),([-\d.]+)\)/.exec(canvas.getAttribute("transform") || "");
            let x = m ? parseFloat(m[1]) : 0, y = m ? parseFloat(m[2]) : 0;
            let drag = null;
            svg.addEventListener("mousedown", e => { drag = { x: e.clientX - x, y: e.clientY - y }; svg.classList.add("dragging"); });
            window.addEventListener("mouseup", () => { drag = null; svg.classList.remove("dragging"); });
            window.addEventListener("mousemove", e => {
                if (!drag) return;
                x = e.clientX - drag.x;
                y = e.clientY - drag.y;
                canvas.setAttribute("transform", "translate(" + x + "," + y + ")");
            });
        }

        new ResizeObserver(() => requestAnimationFrame(measure)).observe(box);
        requestAnimationFrame(measure);
    })();
    </script>
</body>
</html>
`))

type pageData struct {
	ID    string
	Title string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	d, err := s.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	title := "treedisplay"
	if uri := d.Position().URI; uri != "" {
		title += " - " + uri
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, pageData{ID: d.ID(), Title: title}); err != nil {
		s.logger.Error("render page", "id", d.ID(), "error", err)
	}
}
