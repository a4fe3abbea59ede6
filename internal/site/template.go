package site

import "html/template"

// pageData is the input of the page template
type pageData struct {
	Title        string
	SiteTitle    string
	Stylesheet   string
	Version      string
	Nav          []navEntry
	MarkdownFile string
	HTMLFile     string
}

type navEntry struct {
	Href   string
	Title  string
	Active bool
}

// The page renders client side: marked fetches the sibling Markdown file and
// highlight.js colours code blocks.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.SiteTitle}}</title>
    <link rel="stylesheet" href="{{.Stylesheet}}">
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <script src="https://cdn.jsdelivr.net/gh/highlightjs/cdn-release@11.9.0/build/highlight.min.js"></script>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/gh/highlightjs/cdn-release@11.9.0/build/styles/github.min.css">
</head>
<body>
    <header class="header">
        <div class="container">
            <div class="header-content">
                <a href="index.html" class="logo">{{.SiteTitle}}</a>
                <span class="version-badge" id="version">{{if .Version}}v{{.Version}}{{end}}</span>
            </div>
        </div>
    </header>

    <div class="main-layout">
        <nav class="sidebar">
            <ul class="sidebar-nav" id="nav">
{{- range .Nav}}
                <li><a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a></li>
{{- end}}
            </ul>
        </nav>

        <main class="content">
            <div id="content"></div>
        </main>
    </div>

    <script>
        fetch('VERSION')
            .then(r => r.text())
            .then(v => {
                const badge = document.getElementById('version');
                if (badge) badge.textContent = 'v' + v.trim();
            })
            .catch(() => {});

        marked.setOptions({
            highlight: function(code, lang) {
                if (lang && hljs.getLanguage(lang)) {
                    return hljs.highlight(code, { language: lang }).value;
                }
                return hljs.highlightAuto(code).value;
            },
            breaks: true,
            gfm: true
        });

        fetch({{.MarkdownFile}})
            .then(r => r.text())
            .then(md => {
                document.getElementById('content').innerHTML = marked.parse(md);
                const current = {{.HTMLFile}};
                document.querySelectorAll('.sidebar-nav a').forEach(a => {
                    a.classList.remove('active');
                    if (a.getAttribute('href') === current) {
                        a.classList.add('active');
                    }
                });
            })
            .catch(e => {
                document.getElementById('content').innerHTML = '<p>Documentation not found.</p>';
            });
    </script>
</body>
</html>
`))
