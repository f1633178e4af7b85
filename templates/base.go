package templates

// Base template - shared structure for all HTML pages.
// Page templates define the "content" block.

func GetBaseTemplates() string {
	return baseTemplate + headerTemplate + flashTemplate + footerTemplate
}

var baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - Olas</title>
  <link rel="stylesheet" href="/static/style.css">
  <script src="/static/helm.js" defer></script>
</head>
<body id="top">
  <a href="#main-content" class="skip-link">{{i18n "a11y.skip_to_main"}}</a>
  <div class="container">
    {{template "header" .}}
    {{template "flash" .}}
    <main id="main-content">
      <h1>{{.Title}}</h1>
      {{template "content" .}}
    </main>
    {{template "footer" .}}
  </div>
</body>
</html>{{end}}
`

var headerTemplate = `{{define "header"}}
<header class="sticky-section">
  <nav>
    <a href="/html/notifications" class="nav-tab{{if eq .Nav "notifications"}} active{{end}}"{{if eq .Nav "notifications"}} aria-current="page"{{end}}>🔔 {{i18n "nav.notifications"}}{{if .HasUnread}} <span class="notification-badge" role="status" aria-label="{{i18n "a11y.new_notifications"}}">•</span>{{end}}</a>
    {{if .CanSign}}<a href="/html/compose" class="nav-tab{{if eq .Nav "compose"}} active{{end}}"{{if eq .Nav "compose"}} aria-current="page"{{end}}>➕ {{i18n "nav.compose"}}</a>{{end}}
    <a href="/html/settings" class="nav-tab{{if eq .Nav "settings"}} active{{end}}"{{if eq .Nav "settings"}} aria-current="page"{{end}}>⚙️ {{i18n "nav.settings"}}</a>
    {{if not .LoggedIn}}<a href="/html/login" class="btn-primary ml-auto">{{i18n "btn.login"}}</a>{{end}}
  </nav>
</header>
{{end}}`

var flashTemplate = `{{define "flash"}}
<div id="flash">
{{if .Flash.Error}}<div class="flash-message flash-error" role="alert">{{.Flash.Error}}</div>{{end}}
{{if .Flash.Success}}<div class="flash-message flash-success" role="status">{{.Flash.Success}}</div>{{end}}
</div>
{{end}}
{{define "oob-flash"}}<div id="flash" h-oob="outer"><div class="flash-message flash-{{.Type}}" role="alert">{{.Message}}</div></div>{{end}}`

var footerTemplate = `{{define "footer"}}
<footer>
<a href="#top" class="scroll-top" aria-label="{{i18n "a11y.scroll_top"}}">↑</a>
</footer>
{{end}}`
