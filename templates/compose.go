package templates

// Post type selector and the new post form.

func GetComposeTemplate() string {
	return composeContent
}

var composeContent = `{{define "content"}}
<div class="post-type-grid">
{{range .PostTypes}}
  <a href="/html/compose/new?type={{.ID}}" class="post-type btn-secondary">
    <span class="post-type-icon" aria-hidden="true">{{.Icon}}</span>
    <span class="text-sm text-muted">{{.Label}}</span>
  </a>
{{end}}
</div>
{{end}}`

func GetNewPostTemplate() string {
	return newPostContent
}

var newPostContent = `{{define "content"}}
<form method="POST" action="/html/post" class="post-form" id="post-form">
  <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
  <input type="hidden" name="type" value="{{.PostType.ID}}">
  <label for="media-url">{{if eq .PostType.Media "videos"}}{{i18n "compose.video_url"}}{{else}}{{i18n "compose.image_url"}}{{end}}</label>
  <input id="media-url" name="media_url" type="url" required placeholder="https://">
  {{if .PostType.Square}}<p class="hint">{{i18n "compose.square_hint"}}</p>{{end}}
  <label for="mime-type">{{i18n "compose.mime_type"}}</label>
  <input id="mime-type" name="mime_type" type="text" placeholder="{{.PostType.Accept}}">
  <label for="alt">{{i18n "compose.alt"}}</label>
  <input id="alt" name="alt" type="text" maxlength="500">
  <label for="caption">{{i18n "compose.caption"}}</label>
  <textarea id="caption" name="caption" maxlength="2000"></textarea>
  <button type="submit" class="btn-primary">{{i18n "btn.post"}}</button>
</form>
{{end}}`
