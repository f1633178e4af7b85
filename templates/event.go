package templates

// Single event view with its react button.

func GetEventTemplate() string {
	return eventContent + reactButton
}

var eventContent = `{{define "content"}}
<article class="note" id="event-{{.Event.ID}}">
  <header class="note-header">
    {{if .AuthorPicture}}<img src="{{.AuthorPicture}}" alt="" class="avatar" width="32" height="32" loading="lazy">{{end}}
    <span class="note-author" title="{{.AuthorNpub}}">{{.AuthorName}}</span>
    <time datetime="{{isoTime .Event.CreatedAt}}">{{.TimeAgo}}</time>
  </header>
  {{range .Media}}
  {{if .IsVideo}}<video src="{{.URL}}" controls playsinline preload="metadata" class="note-media"></video>{{else}}<img src="{{.URL}}" alt="{{.Alt}}" class="note-media" loading="lazy">{{end}}
  {{end}}
  {{if .Event.Content}}<div class="note-content">{{renderContent .Event.Content}}</div>{{end}}
  <footer class="note-footer" id="react-{{.Event.ID}}">
    {{template "react-button" .}}
  </footer>
</article>
{{end}}`

var reactButton = `{{define "react-button"}}
{{if .CanSign}}
<form method="POST" action="/html/react" class="inline-form" h-post h-target="#react-{{.Event.ID}}" h-swap="inner">
  <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
  <input type="hidden" name="event_id" value="{{.Event.ID}}">
  <button type="submit" class="react-btn{{if .Button.Reacted}} reacted{{end}}" aria-pressed="{{.Button.Reacted}}" aria-label="{{i18n "btn.react"}}">{{if .Button.Reacted}}♥{{else}}♡{{end}}</button>
  {{if .Button.ShowCount}}<span class="text-sm">{{.Button.Count}}</span>{{end}}
</form>
{{else}}
<span class="react-btn{{if .Button.Reacted}} reacted{{end}}" aria-hidden="true">{{if .Button.Reacted}}♥{{else}}♡{{end}}</span>
{{if .Button.ShowCount}}<span class="text-sm">{{.Button.Count}}</span>{{end}}
{{end}}
{{end}}`
